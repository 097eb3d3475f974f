package resources

import (
	"context"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResourceSnapshotMongoRepository reads party fields straight from the
// clinical collections. Only the requested fields are projected.
type ResourceSnapshotMongoRepository struct {
	Collections map[models.ResourceType]*mongo.Collection
}

func NewResourceSnapshotMongoRepository(db *mongo.Client, dbName string) contracts.ResourceSnapshotRepository {
	database := db.Database(dbName)
	return &ResourceSnapshotMongoRepository{
		Collections: map[models.ResourceType]*mongo.Collection{
			models.ResourceAppointment:   database.Collection(constvars.MongoCollectionAppointments),
			models.ResourceInvoice:       database.Collection(constvars.MongoCollectionInvoices),
			models.ResourceMedicalRecord: database.Collection(constvars.MongoCollectionMedicalRecords),
			models.ResourcePrescription:  database.Collection(constvars.MongoCollectionPrescriptions),
		},
	}
}

func (repo *ResourceSnapshotMongoRepository) collection(resourceType models.ResourceType) (*mongo.Collection, error) {
	collection, ok := repo.Collections[resourceType]
	if !ok {
		return nil, exceptions.ErrUnknownResourceType(nil, string(resourceType))
	}
	return collection, nil
}

func (repo *ResourceSnapshotMongoRepository) FindPartyFields(ctx context.Context, resourceType models.ResourceType, resourceID string, fieldNames []string) (models.PartyFields, error) {
	collection, err := repo.collection(resourceType)
	if err != nil {
		return nil, err
	}

	objectID, err := primitive.ObjectIDFromHex(resourceID)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOne().SetProjection(fieldProjection(fieldNames))
	raw, err := collection.FindOne(ctx, bson.M{constvars.MongoFieldID: objectID}, opts).Raw()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	return partyFieldsFromRaw(raw, fieldNames), nil
}

func (repo *ResourceSnapshotMongoRepository) FindPartyFieldsByIDs(ctx context.Context, resourceType models.ResourceType, resourceIDs []string, fieldNames []string) (map[string]models.PartyFields, error) {
	collection, err := repo.collection(resourceType)
	if err != nil {
		return nil, err
	}

	result := make(map[string]models.PartyFields, len(resourceIDs))
	objectIDs := make([]primitive.ObjectID, 0, len(resourceIDs))
	requested := make(map[primitive.ObjectID]string, len(resourceIDs))
	for _, resourceID := range resourceIDs {
		objectID, err := primitive.ObjectIDFromHex(resourceID)
		if err != nil {
			continue
		}
		if _, seen := requested[objectID]; seen {
			continue
		}
		requested[objectID] = resourceID
		objectIDs = append(objectIDs, objectID)
	}
	if len(objectIDs) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(fieldProjection(fieldNames))
	cursor, err := collection.Find(ctx, bson.M{constvars.MongoFieldID: bson.M{"$in": objectIDs}}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		objectID, ok := cursor.Current.Lookup(constvars.MongoFieldID).ObjectIDOK()
		if !ok {
			continue
		}
		resourceID, ok := requested[objectID]
		if !ok {
			continue
		}
		result[resourceID] = partyFieldsFromRaw(cursor.Current, fieldNames)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	return result, nil
}

func fieldProjection(fieldNames []string) bson.M {
	projection := bson.M{constvars.MongoFieldID: 1}
	for _, field := range fieldNames {
		projection[field] = 1
	}
	return projection
}

// partyFieldsFromRaw keeps ObjectID and string values as hex/plain strings.
// Absent or null fields are left out so the ownership index can tell a
// missing party from a present one.
func partyFieldsFromRaw(raw bson.Raw, fieldNames []string) models.PartyFields {
	fields := make(models.PartyFields, len(fieldNames))
	for _, field := range fieldNames {
		value, err := raw.LookupErr(field)
		if err != nil {
			continue
		}
		if objectID, ok := value.ObjectIDOK(); ok {
			fields[field] = objectID.Hex()
			continue
		}
		if str, ok := value.StringValueOK(); ok && str != "" {
			fields[field] = str
		}
	}
	return fields
}
