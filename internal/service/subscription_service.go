package service

import (
	"context"
	"errors"

	"github.com/sefazor/funders-backend/internal/models"
	"github.com/sefazor/funders-backend/pkg/mailinglist"
	"go.uber.org/zap"
)

type MailingList interface {
	AddMember(ctx context.Context, member mailinglist.Member) error
}

type WelcomeMailer interface {
	SendWelcomeEmail(email, firstName string) error
}

type SubscriptionService struct {
	list   MailingList
	mailer WelcomeMailer
	logger *zap.Logger
}

// NewSubscriptionService builds the service; mailer may be nil.
func NewSubscriptionService(list MailingList, mailer WelcomeMailer, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		list:   list,
		mailer: mailer,
		logger: logger.Named("subscription"),
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, req models.SubscribeRequest) error {
	if req.Email == "" {
		return &Error{Kind: ErrValidation, Msg: "email is required"}
	}

	err := s.list.AddMember(ctx, mailinglist.Member{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		s.logger.Warn("subscription error", zap.String("email", req.Email), zap.Error(err))

		var apiErr *mailinglist.APIError
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.IsAuthFailure():
				return &Error{Kind: ErrUpstreamAuth, Msg: "mailing list rejected API key", Err: err}
			case apiErr.IsMemberExists():
				return &Error{Kind: ErrMemberExists, Msg: "member already exists", Err: err}
			}
		}
		return &Error{Kind: ErrUpstreamRequest, Msg: "mailing list request failed", Err: err}
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(req.Email, req.FirstName); err != nil {
			s.logger.Warn("welcome email failed", zap.String("email", req.Email), zap.Error(err))
		}
	}
	return nil
}
