package notification

import (
	"context"
	"fmt"

	userRepo "pawroute/database/repository/user"
	walkerRepo "pawroute/database/repository/walker"
	"pawroute/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production FCM implementation.
type DefaultNotificationService struct {
	Users   userRepo.UserRepository
	Walkers walkerRepo.WalkerRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository, walkers walkerRepo.WalkerRepository) (*DefaultNotificationService, error) {
	if users == nil || walkers == nil {
		return nil, fmt.Errorf("notification service initialization error: user or walker repository is nil")
	}
	return &DefaultNotificationService{Users: users, Walkers: walkers}, nil
}

func send(ctx context.Context, token, role, title, body string, data map[string]string) error {
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = role
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("push sent", zap.String("response", response))
	return nil
}

// SendClientPush looks up a client's FCM token and sends a push.
func (s *DefaultNotificationService) SendClientPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendClientPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendClientPush: user %s has no FCM token", userID)
	}
	return send(ctx, u.FCMToken, "client", title, body, data)
}

// SendWalkerPush looks up a walker's FCM token and sends a push.
func (s *DefaultNotificationService) SendWalkerPush(ctx context.Context, walkerID, title, body string, data map[string]string) error {
	w, err := s.Walkers.GetByID(ctx, walkerID)
	if err != nil {
		return fmt.Errorf("SendWalkerPush: could not find walker %s: %w", walkerID, err)
	}
	if w.FCMToken == "" {
		return fmt.Errorf("SendWalkerPush: walker %s has no FCM token", walkerID)
	}
	return send(ctx, w.FCMToken, "walker", title, body, data)
}
