package services

import (
	"github.com/containrrr/shoutrrr"
	"github.com/containrrr/shoutrrr/pkg/router"
	"github.com/containrrr/shoutrrr/pkg/types"

	"github.com/Godasy/visitor-management-system/internal/logger"
)

// NotifierService fans admin events out to the configured shoutrrr URLs.
// Sends are fire-and-forget; failures are logged and never returned to the
// code path that triggered them.
type NotifierService struct {
	sender *router.ServiceRouter
}

// NewNotifierService builds a notifier for the given service URLs. With no
// URLs (or unparseable ones) the notifier is a no-op.
func NewNotifierService(urls []string) *NotifierService {
	if len(urls) == 0 {
		return &NotifierService{}
	}

	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		logger.Log().WithError(err).Warn("notification URLs rejected, external notifications disabled")
		return &NotifierService{}
	}
	return &NotifierService{sender: sender}
}

// Send delivers one message to every configured service asynchronously.
func (s *NotifierService) Send(title, message string) {
	if s.sender == nil {
		return
	}

	go func() {
		params := types.Params{"title": title}
		for _, err := range s.sender.Send(message, &params) {
			if err != nil {
				logger.Log().WithError(err).Warn("notification delivery failed")
			}
		}
	}()
}
