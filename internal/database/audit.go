package repository

import (
	"HayatAdmin/entity"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const auditCollection = "audit"

// SaveAudit stores one mutation record.
func (m *MongoDB) SaveAudit(ctx context.Context, entry *entity.AuditEntry) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(auditCollection)

	_, err = collection.InsertOne(ctx, entry)
	return err
}

// ListAudit returns the newest entries first; an empty resource means all resources.
func (m *MongoDB) ListAudit(ctx context.Context, resource string, limit int64) ([]entity.AuditEntry, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(auditCollection)

	filter := bson.D{}
	if resource != "" {
		filter = bson.D{{Key: "resource", Value: resource}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, m.findError(err)
	}
	defer cursor.Close(ctx)

	entries := make([]entity.AuditEntry, 0)
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
