package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ZaguanLabs/tmt"
)

const (
	translationsCollection = "translations"
	languagesCollection    = "languages"
)

// MongoStore persists translations and languages in MongoDB. Single-document
// operations rely on MongoDB's per-document atomicity; no multi-document
// transactions are used.
type MongoStore struct {
	client       *mongo.Client
	db           *mongo.Database
	translations *mongo.Collection
	languages    *mongo.Collection
}

type translationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Key       string             `bson:"key"`
	Values    map[string]string  `bson:"values"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type languageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Code      string             `bson:"code"`
	Name      string             `bson:"name"`
	IsDefault bool               `bson:"is_default"`
}

// NewMongoStore connects to MongoDB and prepares the two collections,
// creating the unique indexes on translation key and language code.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &tmt.StoreError{Op: "connect", Cause: err}
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, &tmt.StoreError{Op: "ping", Cause: err}
	}

	db := client.Database(dbName)
	s := &MongoStore{
		client:       client,
		db:           db,
		translations: db.Collection(translationsCollection),
		languages:    db.Collection(languagesCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.translations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return &tmt.StoreError{Op: "index translations.key", Cause: err}
	}

	_, err = s.languages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return &tmt.StoreError{Op: "index languages.code", Cause: err}
	}

	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping reports database reachability.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return &tmt.StoreError{Op: "ping", Cause: err}
	}
	return nil
}

func docToTranslation(d translationDoc) tmt.Translation {
	return tmt.Translation{
		ID:        d.ID.Hex(),
		Key:       d.Key,
		Values:    d.Values,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// InsertTranslation persists a new translation, setting its timestamps and
// generated id. A key collision yields *tmt.DuplicateKeyError.
func (s *MongoStore) InsertTranslation(ctx context.Context, tr *tmt.Translation) error {
	now := time.Now().UTC()
	doc := translationDoc{
		Key:       tr.Key,
		Values:    tr.Values,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.translations.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &tmt.DuplicateKeyError{Key: tr.Key}
		}
		return &tmt.StoreError{Op: "insert translation", Cause: err}
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		tr.ID = oid.Hex()
	}
	tr.CreatedAt = now
	tr.UpdatedAt = now
	return nil
}

// TranslationByID resolves one translation by its hex id.
func (s *MongoStore) TranslationByID(ctx context.Context, id string) (*tmt.Translation, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}

	var doc translationDoc
	err := s.translations.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}
	if err != nil {
		return nil, &tmt.StoreError{Op: "find translation", Cause: err}
	}

	tr := docToTranslation(doc)
	return &tr, nil
}

// TranslationByKey resolves one translation by its unique key.
func (s *MongoStore) TranslationByKey(ctx context.Context, key string) (*tmt.Translation, error) {
	var doc translationDoc
	err := s.translations.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: key}
	}
	if err != nil {
		return nil, &tmt.StoreError{Op: "find translation by key", Cause: err}
	}

	tr := docToTranslation(doc)
	return &tr, nil
}

// ListTranslations searches, sorts, and paginates. The substring filter is
// matched case-insensitively against the key and every language value, which
// requires unrolling the values map server-side ($objectToArray), so the
// query runs as one aggregation with a $facet for slice + total count.
func (s *MongoStore) ListTranslations(ctx context.Context, q tmt.ListQuery) ([]tmt.Translation, int64, error) {
	match := bson.M{}
	if q.Query != "" {
		// QuoteMeta so the user's search term always matches literally.
		regex := bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(q.Query), Options: "i"}}
		match = bson.M{"$or": bson.A{
			bson.M{"key": regex},
			bson.M{"vals.v": regex},
		}}
	}

	dir := 1
	if q.Order == tmt.OrderDesc {
		dir = -1
	}

	skip := int64(q.Page-1) * int64(q.PerPage)

	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{"vals": bson.M{"$objectToArray": "$values"}}}},
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: string(q.Sort), Value: dir}, {Key: "_id", Value: 1}}}},
		{{Key: "$facet", Value: bson.M{
			"total": bson.A{bson.M{"$count": "n"}},
			"items": bson.A{
				bson.M{"$skip": skip},
				bson.M{"$limit": int64(q.PerPage)},
				bson.M{"$unset": "vals"},
			},
		}}},
	}

	cursor, err := s.translations.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, &tmt.StoreError{Op: "list translations", Cause: err}
	}
	defer cursor.Close(ctx)

	var pages []struct {
		Total []struct {
			N int64 `bson:"n"`
		} `bson:"total"`
		Items []translationDoc `bson:"items"`
	}
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, 0, &tmt.StoreError{Op: "decode translations", Cause: err}
	}
	if len(pages) == 0 {
		return nil, 0, nil
	}

	var total int64
	if len(pages[0].Total) > 0 {
		total = pages[0].Total[0].N
	}

	items := make([]tmt.Translation, 0, len(pages[0].Items))
	for _, doc := range pages[0].Items {
		items = append(items, docToTranslation(doc))
	}

	return items, total, nil
}

// AllTranslations returns every translation, key-ordered.
func (s *MongoStore) AllTranslations(ctx context.Context) ([]tmt.Translation, error) {
	cursor, err := s.translations.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, &tmt.StoreError{Op: "list all translations", Cause: err}
	}
	defer cursor.Close(ctx)

	var docs []translationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &tmt.StoreError{Op: "decode translations", Cause: err}
	}

	items := make([]tmt.Translation, 0, len(docs))
	for _, doc := range docs {
		items = append(items, docToTranslation(doc))
	}
	return items, nil
}

// MergeTranslationValues sets each patched code individually so untouched
// codes survive, advances updated_at, and returns the updated document.
func (s *MongoStore) MergeTranslationValues(ctx context.Context, id string, patch map[string]string) (*tmt.Translation, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for code, value := range patch {
		set["values."+code] = value
	}

	var doc translationDoc
	err := s.translations.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}
	if err != nil {
		return nil, &tmt.StoreError{Op: "merge translation values", Cause: err}
	}

	tr := docToTranslation(doc)
	return &tr, nil
}

// ReplaceTranslationValues swaps the whole values map, advancing updated_at.
func (s *MongoStore) ReplaceTranslationValues(ctx context.Context, id string, values map[string]string) (*tmt.Translation, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}

	var doc translationDoc
	err := s.translations.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"values": values, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &tmt.NotFoundError{Kind: "translation", ID: id}
	}
	if err != nil {
		return nil, &tmt.StoreError{Op: "replace translation values", Cause: err}
	}

	tr := docToTranslation(doc)
	return &tr, nil
}

// SetTranslationValue sets a single language value, advancing updated_at.
func (s *MongoStore) SetTranslationValue(ctx context.Context, id, code, value string) error {
	oid, ok := parseID(id)
	if !ok {
		return &tmt.NotFoundError{Kind: "translation", ID: id}
	}

	res, err := s.translations.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"values." + code: value, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return &tmt.StoreError{Op: "set translation value", Cause: err}
	}
	if res.MatchedCount == 0 {
		return &tmt.NotFoundError{Kind: "translation", ID: id}
	}
	return nil
}

// DeleteTranslation permanently removes a translation.
func (s *MongoStore) DeleteTranslation(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return &tmt.NotFoundError{Kind: "translation", ID: id}
	}

	res, err := s.translations.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &tmt.StoreError{Op: "delete translation", Cause: err}
	}
	if res.DeletedCount == 0 {
		return &tmt.NotFoundError{Kind: "translation", ID: id}
	}
	return nil
}

// Languages returns the configured languages, default first then by code.
func (s *MongoStore) Languages(ctx context.Context) ([]tmt.Language, error) {
	cursor, err := s.languages.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "is_default", Value: -1}, {Key: "code", Value: 1}}))
	if err != nil {
		return nil, &tmt.StoreError{Op: "list languages", Cause: err}
	}
	defer cursor.Close(ctx)

	var docs []languageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &tmt.StoreError{Op: "decode languages", Cause: err}
	}

	langs := make([]tmt.Language, 0, len(docs))
	for _, doc := range docs {
		langs = append(langs, tmt.Language{
			ID:        doc.ID.Hex(),
			Code:      doc.Code,
			Name:      doc.Name,
			IsDefault: doc.IsDefault,
		})
	}
	return langs, nil
}

// LanguageByCode resolves one language by its code.
func (s *MongoStore) LanguageByCode(ctx context.Context, code string) (*tmt.Language, error) {
	var doc languageDoc
	err := s.languages.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &tmt.NotFoundError{Kind: "language", ID: code}
	}
	if err != nil {
		return nil, &tmt.StoreError{Op: "find language", Cause: err}
	}

	return &tmt.Language{
		ID:        doc.ID.Hex(),
		Code:      doc.Code,
		Name:      doc.Name,
		IsDefault: doc.IsDefault,
	}, nil
}

// InsertLanguage persists a new language. A code collision yields
// *tmt.DuplicateLanguageError.
func (s *MongoStore) InsertLanguage(ctx context.Context, lang *tmt.Language) error {
	res, err := s.languages.InsertOne(ctx, languageDoc{
		Code:      lang.Code,
		Name:      lang.Name,
		IsDefault: lang.IsDefault,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &tmt.DuplicateLanguageError{Code: lang.Code}
		}
		return &tmt.StoreError{Op: "insert language", Cause: err}
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		lang.ID = oid.Hex()
	}
	return nil
}

// SeedLanguages inserts langs only when the collection is empty.
func (s *MongoStore) SeedLanguages(ctx context.Context, langs []tmt.Language) error {
	count, err := s.languages.CountDocuments(ctx, bson.M{})
	if err != nil {
		return &tmt.StoreError{Op: "count languages", Cause: err}
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(langs))
	for _, lang := range langs {
		docs = append(docs, languageDoc{
			Code:      lang.Code,
			Name:      lang.Name,
			IsDefault: lang.IsDefault,
		})
	}

	if _, err := s.languages.InsertMany(ctx, docs); err != nil {
		return &tmt.StoreError{Op: "seed languages", Cause: err}
	}
	return nil
}
