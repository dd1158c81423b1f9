package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"saathi_server/models"
	"saathi_server/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// InitializeDynamoDBClient initializes the DynamoDB client from the ambient
// AWS configuration
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

func putItem(ctx context.Context, client *dynamodb.Client, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaled,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	return nil
}

func getItem(ctx context.Context, client *dynamodb.Client, tableName string, key map[string]types.AttributeValue, out interface{}) error {
	output, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to get item from table '%s': %w", tableName, err)
	}
	if output.Item == nil {
		return fmt.Errorf("item in table '%s': %w", tableName, models.ErrNotFound)
	}
	if err := attributevalue.UnmarshalMap(output.Item, out); err != nil {
		return fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return nil
}

func scanAll(ctx context.Context, client *dynamodb.Client, tableName string, out interface{}) error {
	output, err := client.Scan(ctx, &dynamodb.ScanInput{TableName: &tableName})
	if err != nil {
		return fmt.Errorf("failed to scan table '%s': %w", tableName, err)
	}
	if err := attributevalue.UnmarshalListOfMaps(output.Items, out); err != nil {
		return fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return nil
}

// DynamoProfileRepository is the DynamoDB-backed ProfileRepository, selected
// with STORAGE_BACKEND=dynamo
type DynamoProfileRepository struct {
	Client *dynamodb.Client
}

func (r *DynamoProfileRepository) key(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *DynamoProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := scanAll(ctx, r.Client, models.ProfilesTable, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *DynamoProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := getItem(ctx, r.Client, models.ProfilesTable, r.key(userID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *DynamoProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	profiles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if strings.EqualFold(p.Email, email) {
			profile := p
			return &profile, nil
		}
	}
	return nil, fmt.Errorf("profile with email %q: %w", email, models.ErrNotFound)
}

func (r *DynamoProfileRepository) Create(ctx context.Context, profile models.Profile) error {
	return putItem(ctx, r.Client, models.ProfilesTable, profile)
}

func (r *DynamoProfileRepository) Update(ctx context.Context, profile models.Profile) error {
	if _, err := r.Get(ctx, profile.UserID); err != nil {
		return err
	}
	return putItem(ctx, r.Client, models.ProfilesTable, profile)
}

// UpdateMany writes the batch in a single transaction so the interest
// lifecycle's pair updates stay atomic.
func (r *DynamoProfileRepository) UpdateMany(ctx context.Context, profiles []models.Profile) error {
	items := make([]types.TransactWriteItem, 0, len(profiles))
	for _, profile := range profiles {
		if _, err := r.Get(ctx, profile.UserID); err != nil {
			return err
		}
		marshaled, err := attributevalue.MarshalMap(profile)
		if err != nil {
			return fmt.Errorf("failed to marshal profile %s: %w", profile.UserID, err)
		}
		tableName := models.ProfilesTable
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{TableName: &tableName, Item: marshaled},
		})
	}
	_, err := r.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		return fmt.Errorf("failed to write profile batch: %w", err)
	}
	return nil
}

func (r *DynamoProfileRepository) Delete(ctx context.Context, userID string) error {
	tableName := models.ProfilesTable
	_, err := r.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &tableName,
		Key:       r.key(userID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", userID, err)
	}
	return nil
}

// DynamoConversationRepository is the DynamoDB-backed ConversationRepository
type DynamoConversationRepository struct {
	Client *dynamodb.Client
}

func (r *DynamoConversationRepository) key(conversationID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
}

func (r *DynamoConversationRepository) List(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := scanAll(ctx, r.Client, models.ConversationsTable, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *DynamoConversationRepository) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Conversation
	for _, c := range all {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *DynamoConversationRepository) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := getItem(ctx, r.Client, models.ConversationsTable, r.key(conversationID), &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *DynamoConversationRepository) FindByParticipants(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	want := utils.PairKey(userA, userB)
	for _, c := range all {
		if len(c.ParticipantIDs) == 2 && utils.PairKey(c.ParticipantIDs[0], c.ParticipantIDs[1]) == want {
			conversation := c
			return &conversation, nil
		}
	}
	return nil, fmt.Errorf("conversation for pair (%s, %s): %w", userA, userB, models.ErrNotFound)
}

func (r *DynamoConversationRepository) Create(ctx context.Context, conversation models.Conversation) error {
	return putItem(ctx, r.Client, models.ConversationsTable, conversation)
}

func (r *DynamoConversationRepository) Update(ctx context.Context, conversation models.Conversation) error {
	if _, err := r.Get(ctx, conversation.ConversationID); err != nil {
		return err
	}
	return putItem(ctx, r.Client, models.ConversationsTable, conversation)
}

// DynamoNotificationRepository is the DynamoDB-backed NotificationRepository
type DynamoNotificationRepository struct {
	Client *dynamodb.Client
}

func (r *DynamoNotificationRepository) key(notificationID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"notificationId": &types.AttributeValueMemberS{Value: notificationID},
	}
}

func (r *DynamoNotificationRepository) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var all []models.Notification
	if err := scanAll(ctx, r.Client, models.NotificationsTable, &all); err != nil {
		return nil, err
	}
	var out []models.Notification
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *DynamoNotificationRepository) Get(ctx context.Context, notificationID string) (*models.Notification, error) {
	var notification models.Notification
	if err := getItem(ctx, r.Client, models.NotificationsTable, r.key(notificationID), &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *DynamoNotificationRepository) Create(ctx context.Context, notification models.Notification) error {
	return putItem(ctx, r.Client, models.NotificationsTable, notification)
}

func (r *DynamoNotificationRepository) Update(ctx context.Context, notification models.Notification) error {
	if _, err := r.Get(ctx, notification.NotificationID); err != nil {
		return err
	}
	return putItem(ctx, r.Client, models.NotificationsTable, notification)
}
