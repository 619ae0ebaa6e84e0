package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/0xSujith18/Talkit/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound is returned when a post id resolves to no document
var ErrPostNotFound = fmt.Errorf("post not found")

// PostRepository defines the interface for feed post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetFeed(ctx context.Context, page, limit int64) ([]models.Post, int64, error)
	GetTrending(ctx context.Context, limit int64) ([]models.Post, error)
	GetPostsByHashtag(ctx context.Context, tag string) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	GetPostIDsByUserID(ctx context.Context, userID uint) ([]string, error)
	ToggleLike(ctx context.Context, id string, userID uint) (bool, error)
	AddVisibilityScore(ctx context.Context, id string, delta int) error
	UpdateCaption(ctx context.Context, id string, caption string, hashtags []string) error
	UpdateStatus(ctx context.Context, id string, status string) error
	DeletePost(ctx context.Context, id string) error
	DeletePostsByUserID(ctx context.Context, userID uint) ([]string, error)
	PullUserLikes(ctx context.Context, userID uint) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Post, error) {
	var posts []models.Post
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// GetFeed retrieves a recency-ordered page of posts plus the total count
func (r *MongoPostRepository) GetFeed(ctx context.Context, page, limit int64) ([]models.Post, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	posts, err := r.find(ctx, bson.D{}, findOptions)
	return posts, total, err
}

// GetTrending retrieves posts ordered by visibility score. Recency breaks
// score ties and the object id breaks timestamp ties, so the order is
// deterministic for equal scores.
func (r *MongoPostRepository) GetTrending(ctx context.Context, limit int64) ([]models.Post, error) {
	findOptions := options.Find().
		SetLimit(limit).
		SetSort(bson.D{
			{Key: "visibility_score", Value: -1},
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		})
	return r.find(ctx, bson.D{}, findOptions)
}

// GetPostsByHashtag retrieves posts carrying the given (lowercased) hashtag
func (r *MongoPostRepository) GetPostsByHashtag(ctx context.Context, tag string) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"hashtags": tag}, findOptions)
}

// GetPostsByUserID retrieves posts authored by a specific user.
// Anonymous-sourced posts are excluded: listing them under the author's id
// would undo the masking their source report asked for.
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"user_id": userID, "anonymous": bson.M{"$ne": true}}, findOptions)
}

// GetPostIDsByUserID returns the ids of every post the user authored,
// anonymous ones included. Cascade paths use this instead of
// GetPostsByUserID so nothing escapes a purge.
func (r *MongoPostRepository) GetPostIDsByUserID(ctx context.Context, userID uint) ([]string, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID.Hex())
	}
	return ids, nil
}

// ToggleLike flips the user's membership in the likes set and adjusts the
// visibility score in the same server-side update. Both branches are
// conditional on current membership, so concurrent togglers cannot insert
// duplicates or double-count the score. Returns true when the like was
// added, false when it was removed.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, id string, userID uint) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrPostNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "likes": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"likes": userID},
			"$inc":  bson.M{"visibility_score": 1},
		})
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	res, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "likes": userID},
		bson.M{
			"$pull": bson.M{"likes": userID},
			"$inc":  bson.M{"visibility_score": -1},
		})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrPostNotFound
	}
	return false, nil
}

// AddVisibilityScore adjusts the visibility score by delta
func (r *MongoPostRepository) AddVisibilityScore(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"visibility_score": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// UpdateCaption sets the caption and hashtag set of a post
func (r *MongoPostRepository) UpdateCaption(ctx context.Context, id string, caption string, hashtags []string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}
	update := bson.M{"$set": bson.M{
		"caption":    caption,
		"hashtags":   hashtags,
		"updated_at": time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// UpdateStatus sets the post's own workflow status
func (r *MongoPostRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePostsByUserID removes all posts authored by a user and returns the
// removed post ids so the caller can cascade their comments
func (r *MongoPostRepository) DeletePostsByUserID(ctx context.Context, userID uint) ([]string, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	objIDs := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID.Hex())
		objIDs = append(objIDs, doc.ID)
	}
	if len(objIDs) == 0 {
		return ids, nil
	}

	_, err = r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	return ids, err
}

// PullUserLikes removes the user from every likes set they appear in,
// decrementing each affected post's visibility score to match
func (r *MongoPostRepository) PullUserLikes(ctx context.Context, userID uint) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"likes": userID},
		bson.M{
			"$pull": bson.M{"likes": userID},
			"$inc":  bson.M{"visibility_score": -1},
		})
	return err
}
