package services

import (
	"context"
	"sort"
	"time"

	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory fakes mirroring the repository contracts, so the service layer
// can be exercised without Postgres or MongoDB.

type fakeNotifier struct {
	events []*models.Notification
}

func (f *fakeNotifier) Notify(n *models.Notification) {
	f.events = append(f.events, n)
}

func (f *fakeNotifier) ofType(t string) []*models.Notification {
	var out []*models.Notification
	for _, n := range f.events {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	for _, user := range f.users {
		if user.FirebaseUID == uid {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SetVerified(id uint, verified bool) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.IsVerified = verified
	return nil
}

func (f *fakeUserRepo) ScheduleDeletion(id uint, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.DeletionScheduledAt = &at
	return nil
}

func (f *fakeUserRepo) GetUsersDueForDeletion(now time.Time) ([]models.User, error) {
	var due []models.User
	for _, user := range f.users {
		if user.DeletionScheduledAt != nil && !user.DeletionScheduledAt.After(now) {
			due = append(due, *user)
		}
	}
	return due, nil
}

func (f *fakeUserRepo) DeleteUser(id uint) error {
	delete(f.users, id)
	return nil
}

type fakeReportRepo struct {
	reports map[string]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*models.Report{}}
}

func (f *fakeReportRepo) CreateReport(report *models.Report) error {
	f.reports[report.ReportID] = report
	return nil
}

func (f *fakeReportRepo) GetReportByID(reportID string) (*models.Report, error) {
	report, ok := f.reports[reportID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *report
	return &copied, nil
}

func (f *fakeReportRepo) ListReports(filter repositories.ReportFilter, page, limit int) ([]models.Report, int64, error) {
	var matched []models.Report
	for _, report := range f.reports {
		if filter.UserID != 0 && report.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && report.Category != filter.Category {
			continue
		}
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		matched = append(matched, *report)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ReportID < matched[j].ReportID })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeReportRepo) UpdateStatus(reportID string, status string, actionProof []string) (*models.Report, error) {
	report, ok := f.reports[reportID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	report.Status = status
	if len(actionProof) > 0 {
		report.ActionProof = append(report.ActionProof, actionProof...)
	}
	copied := *report
	return &copied, nil
}

func (f *fakeReportRepo) MarkPublished(reportID string, feedPostID string) (bool, error) {
	report, ok := f.reports[reportID]
	if !ok || report.PublishedToFeed {
		return false, nil
	}
	report.PublishedToFeed = true
	report.FeedPostID = feedPostID
	return true, nil
}

func (f *fakeReportRepo) DeleteReportsByUserID(userID uint) error {
	for id, report := range f.reports {
		if report.UserID == userID {
			delete(f.reports, id)
		}
	}
	return nil
}

func (f *fakeReportRepo) Analytics() (*models.ReportAnalytics, error) {
	summary := &models.ReportAnalytics{ByCategory: map[string]int64{}}
	for _, report := range f.reports {
		summary.Total++
		switch report.Status {
		case models.StatusPending:
			summary.Pending++
		case models.StatusInProgress:
			summary.InProgress++
		case models.StatusResolved:
			summary.Resolved++
		}
		summary.ByCategory[report.Category]++
	}
	return summary, nil
}

type fakePostRepo struct {
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	copied := *post
	f.posts[post.ID.Hex()] = &copied
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepo) GetFeed(_ context.Context, page, limit int64) ([]models.Post, int64, error) {
	posts := f.sorted()
	total := int64(len(posts))
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return posts[start:end], total, nil
}

func (f *fakePostRepo) sorted() []models.Post {
	var posts []models.Post
	for _, post := range f.posts {
		posts = append(posts, *post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts
}

func (f *fakePostRepo) GetTrending(_ context.Context, limit int64) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range f.posts {
		posts = append(posts, *post)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].VisibilityScore != posts[j].VisibilityScore {
			return posts[i].VisibilityScore > posts[j].VisibilityScore
		}
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.Hex() > posts[j].ID.Hex()
	})
	if int64(len(posts)) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakePostRepo) GetPostsByHashtag(_ context.Context, tag string) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range f.posts {
		for _, hashtag := range post.Hashtags {
			if hashtag == tag {
				posts = append(posts, *post)
				break
			}
		}
	}
	return posts, nil
}

func (f *fakePostRepo) GetPostsByUserID(_ context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range f.posts {
		if post.UserID == userID && !post.Anonymous {
			posts = append(posts, *post)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) GetPostIDsByUserID(_ context.Context, userID uint) ([]string, error) {
	var ids []string
	for id, post := range f.posts {
		if post.UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakePostRepo) ToggleLike(_ context.Context, id string, userID uint) (bool, error) {
	post, ok := f.posts[id]
	if !ok {
		return false, repositories.ErrPostNotFound
	}
	for i, liker := range post.Likes {
		if liker == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			post.VisibilityScore--
			return false, nil
		}
	}
	post.Likes = append(post.Likes, userID)
	post.VisibilityScore++
	return true, nil
}

func (f *fakePostRepo) AddVisibilityScore(_ context.Context, id string, delta int) error {
	post, ok := f.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	post.VisibilityScore += delta
	return nil
}

func (f *fakePostRepo) UpdateCaption(_ context.Context, id string, caption string, hashtags []string) error {
	post, ok := f.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	post.Caption = caption
	post.Hashtags = hashtags
	post.UpdatedAt = time.Now()
	return nil
}

func (f *fakePostRepo) UpdateStatus(_ context.Context, id string, status string) error {
	post, ok := f.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	post.Status = status
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) DeletePostsByUserID(_ context.Context, userID uint) ([]string, error) {
	var ids []string
	for id, post := range f.posts {
		if post.UserID == userID {
			ids = append(ids, id)
			delete(f.posts, id)
		}
	}
	return ids, nil
}

func (f *fakePostRepo) PullUserLikes(_ context.Context, userID uint) error {
	for _, post := range f.posts {
		for i, liker := range post.Likes {
			if liker == userID {
				post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
				post.VisibilityScore--
				break
			}
		}
	}
	return nil
}

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint

	// beforeCreate, when set, runs just before an insert; tests use it to
	// change other state mid-operation.
	beforeCreate func()
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint]*models.Comment{}, nextID: 1}
}

func (f *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	comment.ID = f.nextID
	f.nextID++
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	for _, comment := range f.comments {
		if comment.PostID == postID {
			comments = append(comments, *comment)
		}
	}
	return comments, nil
}

func (f *fakeCommentRepo) DeleteComment(id uint) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteCommentsByPostID(postID string) error {
	for id, comment := range f.comments {
		if comment.PostID == postID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeCommentRepo) DeleteCommentsByPostIDs(postIDs []string) error {
	for _, postID := range postIDs {
		if err := f.DeleteCommentsByPostID(postID); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeCommentRepo) DeleteCommentsByUserID(userID uint) error {
	for id, comment := range f.comments {
		if comment.UserID == userID {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications map[uint]*models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[uint]*models.Notification{}, nextID: 1}
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	n.ID = f.nextID
	f.nextID++
	copied := *n
	f.notifications[n.ID] = &copied
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID, recipientID uint) error {
	n, ok := f.notifications[notificationID]
	if !ok || n.RecipientID != recipientID {
		return gorm.ErrRecordNotFound
	}
	n.Read = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) DeleteByUserID(userID uint) error {
	for id, n := range f.notifications {
		if n.RecipientID == userID || n.ActorID == userID {
			delete(f.notifications, id)
		}
	}
	return nil
}

type fakeModerationRepo struct {
	reports map[uint]*models.ModerationReport
	nextID  uint
}

func newFakeModerationRepo() *fakeModerationRepo {
	return &fakeModerationRepo{reports: map[uint]*models.ModerationReport{}, nextID: 1}
}

func (f *fakeModerationRepo) CreateReport(report *models.ModerationReport) error {
	report.ID = f.nextID
	f.nextID++
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

func (f *fakeModerationRepo) GetReportByID(id uint) (*models.ModerationReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *report
	return &copied, nil
}

func (f *fakeModerationRepo) ListPending() ([]models.ModerationReport, error) {
	var pending []models.ModerationReport
	for _, report := range f.reports {
		if report.Status == models.ModerationPending {
			pending = append(pending, *report)
		}
	}
	return pending, nil
}

func (f *fakeModerationRepo) SaveReview(report *models.ModerationReport) error {
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

type fakeVerificationRepo struct {
	requests map[uint]*models.VerificationRequest
	nextID   uint
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{requests: map[uint]*models.VerificationRequest{}, nextID: 1}
}

func (f *fakeVerificationRepo) CreateRequest(request *models.VerificationRequest) error {
	request.ID = f.nextID
	f.nextID++
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeVerificationRepo) GetRequestByID(id uint) (*models.VerificationRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeVerificationRepo) GetPendingByUserID(userID uint) (*models.VerificationRequest, error) {
	for _, request := range f.requests {
		if request.UserID == userID && request.Status == models.VerificationPending {
			copied := *request
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVerificationRepo) ListPending() ([]models.VerificationRequest, error) {
	var pending []models.VerificationRequest
	for _, request := range f.requests {
		if request.Status == models.VerificationPending {
			pending = append(pending, *request)
		}
	}
	return pending, nil
}

func (f *fakeVerificationRepo) SaveReview(request *models.VerificationRequest) error {
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

// helpers shared by the service tests

func citizen(id uint) models.Identity {
	return models.Identity{UserID: id, Name: "Citizen", Role: models.RoleCitizen}
}

func authority(id uint) models.Identity {
	return models.Identity{UserID: id, Name: "Authority", Role: models.RoleAuthority, Verified: true}
}

func admin(id uint) models.Identity {
	return models.Identity{UserID: id, Name: "Admin", Role: models.RoleAdmin, Verified: true}
}

func floatPtr(v float64) *float64 { return &v }

func validReportRequest() *models.CreateReportRequest {
	return &models.CreateReportRequest{
		Category:    models.CategoryWater,
		Title:       "Broken water main",
		Description: "Water flooding the street for two days",
		Media:       []string{"media/ref-1"},
		Address:     "12 MG Road",
		Lat:         floatPtr(12.9),
		Lng:         floatPtr(77.6),
		Privacy:     models.PrivacyPublic,
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
