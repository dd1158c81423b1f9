package models

// Notification is an append-only record of a domain event addressed to one user
type Notification struct {
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`
	UserID         string `dynamodbav:"userId" json:"userId"`
	Message        string `dynamodbav:"message" json:"message"`
	IsRead         bool   `dynamodbav:"isRead" json:"isRead"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"` // RFC3339
}

// NotificationsTable is the DynamoDB table name for notifications
const NotificationsTable = "Notifications"
