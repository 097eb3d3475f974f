package profiles

import (
	"context"
	"fmt"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileMongoRepository keeps patient and doctor profiles in their own
// collections, each with a unique index on userId.
type ProfileMongoRepository struct {
	Collections map[models.ProfileKind]*mongo.Collection
}

func NewProfileMongoRepository(db *mongo.Client, dbName string) contracts.ProfileRepository {
	database := db.Database(dbName)
	return &ProfileMongoRepository{
		Collections: map[models.ProfileKind]*mongo.Collection{
			models.ProfileKindPatient: database.Collection(constvars.MongoCollectionPatients),
			models.ProfileKindDoctor:  database.Collection(constvars.MongoCollectionDoctors),
		},
	}
}

type profileBaseDocument struct {
	ID               primitive.ObjectID `bson:"_id"`
	UserID           interface{}        `bson:"userId"`
	models.TimeModel `bson:",inline"`
}

type profileOwnerDocument struct {
	ID     primitive.ObjectID `bson:"_id"`
	UserID interface{}        `bson:"userId"`
}

func (repo *ProfileMongoRepository) collection(kind models.ProfileKind) (*mongo.Collection, error) {
	collection, ok := repo.Collections[kind]
	if !ok {
		return nil, exceptions.ErrInvalidProfileKind(nil, string(kind))
	}
	return collection, nil
}

func (repo *ProfileMongoRepository) EnsureIndexes(ctx context.Context) error {
	for _, collection := range repo.Collections {
		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: constvars.MongoFieldUserID, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_userId"),
		})
		if err != nil {
			return exceptions.ErrMongoDBCreateIndex(err)
		}
	}
	return nil
}

func (repo *ProfileMongoRepository) FindAccountIDByProfileID(ctx context.Context, profileID string, kind models.ProfileKind) (string, error) {
	collection, err := repo.collection(kind)
	if err != nil {
		return "", err
	}

	objectID, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return "", nil
	}

	var owner profileOwnerDocument
	opts := options.FindOne().SetProjection(bson.M{constvars.MongoFieldUserID: 1})
	err = collection.FindOne(ctx, bson.M{constvars.MongoFieldID: objectID}, opts).Decode(&owner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", exceptions.ErrMongoDBFindDocument(err)
	}
	return accountIDFromBSON(owner.UserID), nil
}

func (repo *ProfileMongoRepository) FindAccountIDsByProfileIDs(ctx context.Context, profileIDs []string, kind models.ProfileKind) (map[string]string, error) {
	collection, err := repo.collection(kind)
	if err != nil {
		return nil, err
	}

	requested := make(map[primitive.ObjectID][]string, len(profileIDs))
	objectIDs := make([]primitive.ObjectID, 0, len(profileIDs))
	for _, profileID := range profileIDs {
		objectID, err := primitive.ObjectIDFromHex(profileID)
		if err != nil {
			continue
		}
		if _, ok := requested[objectID]; !ok {
			objectIDs = append(objectIDs, objectID)
		}
		requested[objectID] = append(requested[objectID], profileID)
	}

	result := make(map[string]string, len(objectIDs))
	if len(objectIDs) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(bson.M{constvars.MongoFieldUserID: 1})
	cursor, err := collection.Find(ctx, bson.M{constvars.MongoFieldID: bson.M{"$in": objectIDs}}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var owner profileOwnerDocument
		if err := cursor.Decode(&owner); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		for _, profileID := range requested[owner.ID] {
			result[profileID] = accountIDFromBSON(owner.UserID)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	return result, nil
}

func (repo *ProfileMongoRepository) FindByAccountID(ctx context.Context, accountID string, kind models.ProfileKind) (*models.Profile, error) {
	collection, err := repo.collection(kind)
	if err != nil {
		return nil, err
	}

	raw, err := collection.FindOne(ctx, bson.M{constvars.MongoFieldUserID: accountKey(accountID)}).Raw()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return decodeProfile(kind, raw)
}

func (repo *ProfileMongoRepository) FindByID(ctx context.Context, profileID string, kind models.ProfileKind) (*models.Profile, error) {
	collection, err := repo.collection(kind)
	if err != nil {
		return nil, err
	}

	objectID, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return nil, nil
	}

	raw, err := collection.FindOne(ctx, bson.M{constvars.MongoFieldID: objectID}).Raw()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return decodeProfile(kind, raw)
}

// CreateIfAbsent relies on the unique userId index, so concurrent creators
// for one account cannot both succeed.
func (repo *ProfileMongoRepository) CreateIfAbsent(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	collection, err := repo.collection(profile.Kind)
	if err != nil {
		return nil, err
	}

	objectID := primitive.NewObjectID()
	document, err := encodeProfile(objectID, profile)
	if err != nil {
		return nil, err
	}

	_, err = collection.InsertOne(ctx, document)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrProfileAlreadyExists(err, string(profile.Kind), profile.AccountID)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}

	created := profile.Clone()
	created.ID = objectID.Hex()
	return created, nil
}

func (repo *ProfileMongoRepository) UpdateByAccountID(ctx context.Context, accountID string, kind models.ProfileKind, patch *models.ProfileData) (*models.Profile, error) {
	collection, err := repo.collection(kind)
	if err != nil {
		return nil, err
	}

	setDocument, err := encodeDetails(kind, patch)
	if err != nil {
		return nil, err
	}
	setDocument["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	raw, err := collection.FindOneAndUpdate(ctx,
		bson.M{constvars.MongoFieldUserID: accountKey(accountID)},
		bson.M{"$set": setDocument},
		opts,
	).Raw()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return decodeProfile(kind, raw)
}

func (repo *ProfileMongoRepository) DeleteByID(ctx context.Context, profileID string, kind models.ProfileKind) error {
	collection, err := repo.collection(kind)
	if err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return nil
	}

	_, err = collection.DeleteOne(ctx, bson.M{constvars.MongoFieldID: objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

// accountKey stores account ids that look like ObjectIDs as ObjectIDs so
// documents written by other services keep matching.
func accountKey(accountID string) interface{} {
	if objectID, err := primitive.ObjectIDFromHex(accountID); err == nil {
		return objectID
	}
	return accountID
}

func accountIDFromBSON(value interface{}) string {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func encodeDetails(kind models.ProfileKind, data *models.ProfileData) (bson.M, error) {
	document := bson.M{}

	var details interface{}
	switch {
	case kind == models.ProfileKindPatient && data.Patient != nil:
		details = data.Patient
	case kind == models.ProfileKindDoctor && data.Doctor != nil:
		details = data.Doctor
	default:
		return document, nil
	}

	raw, err := bson.Marshal(details)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if err := bson.Unmarshal(raw, &document); err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return document, nil
}

func encodeProfile(objectID primitive.ObjectID, profile *models.Profile) (bson.M, error) {
	document, err := encodeDetails(profile.Kind, &profile.ProfileData)
	if err != nil {
		return nil, err
	}
	document[constvars.MongoFieldID] = objectID
	document[constvars.MongoFieldUserID] = accountKey(profile.AccountID)
	document["createdAt"] = profile.CreatedAt
	document["updatedAt"] = profile.UpdatedAt
	return document, nil
}

func decodeProfile(kind models.ProfileKind, raw bson.Raw) (*models.Profile, error) {
	var base profileBaseDocument
	if err := bson.Unmarshal(raw, &base); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	profile := &models.Profile{
		ID:        base.ID.Hex(),
		AccountID: accountIDFromBSON(base.UserID),
		Kind:      kind,
		TimeModel: base.TimeModel,
	}

	switch kind {
	case models.ProfileKindPatient:
		var details models.PatientDetails
		if err := bson.Unmarshal(raw, &details); err != nil {
			return nil, exceptions.ErrMongoDBFindDocument(err)
		}
		profile.Patient = &details
	case models.ProfileKindDoctor:
		var details models.DoctorDetails
		if err := bson.Unmarshal(raw, &details); err != nil {
			return nil, exceptions.ErrMongoDBFindDocument(err)
		}
		profile.Doctor = &details
	}

	return profile, nil
}
