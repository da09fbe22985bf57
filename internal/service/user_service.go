package service

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
)

// UserService handles the identity handed over by the transport layer: an
// opaque external id plus a coarse interaction-state tag. The engine itself
// never branches on the state; the transport uses it to route raw input.
type UserService struct {
	users     *repository.UserRepository
	languages *repository.LanguageRepository
}

func NewUserService(users *repository.UserRepository, languages *repository.LanguageRepository) *UserService {
	return &UserService{users: users, languages: languages}
}

// StartSession resolves (or creates) the user for a channel identity. There
// is no client-side session state to lose: every operation reads current
// truth from storage.
func (s *UserService) StartSession(externalID, uiLocale string) (*model.User, error) {
	return s.users.GetOrCreate(externalID, uiLocale)
}

func (s *UserService) ByExternalID(externalID string) (*model.User, error) {
	return s.users.GetOrCreate(externalID, "")
}

// SelectLanguage sets the user's active language and moves the interaction
// state to diagnostics, the next step of onboarding.
func (s *UserService) SelectLanguage(externalID string, languageID uint) (*model.User, error) {
	lang, err := s.languages.ByID(languageID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetOrCreate(externalID, "")
	if err != nil {
		return nil, err
	}

	if err := s.users.SetActiveLanguage(user.ID, lang.ID); err != nil {
		return nil, err
	}
	if err := s.users.SetState(user.ID, model.StateDiagnostics); err != nil {
		return nil, err
	}

	user.ActiveLanguageID = &lang.ID
	user.State = model.StateDiagnostics
	return user, nil
}

func (s *UserService) SetState(userID uint, state model.UserState) error {
	return s.users.SetState(userID, state)
}
