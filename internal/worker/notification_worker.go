package worker

import (
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
