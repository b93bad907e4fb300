package services

import (
	"context"
	"fmt"

	"efgportal/internal/domain"
)

type emailNotifier struct {
	profileRepo  domain.ProfileRepository
	eventRepo    domain.EventRepository
	emailService domain.EmailService
}

// NewEmailNotifier returns a RegistrationNotifier that emails the registrant directly.
func NewEmailNotifier(profileRepo domain.ProfileRepository, eventRepo domain.EventRepository, emailService domain.EmailService) domain.RegistrationNotifier {
	return &emailNotifier{profileRepo: profileRepo, eventRepo: eventRepo, emailService: emailService}
}

func (n *emailNotifier) Notify(ctx context.Context, change domain.RegistrationStatusChanged) error {
	profile, err := n.profileRepo.GetByID(ctx, change.ProfileID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	event, err := n.eventRepo.GetByID(ctx, change.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	data := &domain.RegistrationStatusEmailData{
		Email:     profile.Email,
		FullName:  profile.FullName,
		EventName: event.Name,
		EventDate: event.Date,
		Location:  event.Location,
		Status:    change.To,
	}
	if change.AdminNotes != nil {
		data.AdminNotes = *change.AdminNotes
	}
	return n.emailService.SendRegistrationStatus(ctx, data)
}
