package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/blipsapp/backend/internal/models"
	"github.com/blipsapp/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// testEnv wires every service over shared in-memory fakes
type testEnv struct {
	users         *fakeUserRepo
	blips         *fakeBlipRepo
	comments      *fakeCommentRepo
	notifications *fakeNotificationRepo
	blobs         *fakeBlobStore

	userService    *UserService
	blipService    *BlipService
	commentService *CommentService
	followService  *FollowService
	feedService    *FeedService
	searchService  *SearchService
	notifier       *NotificationService
	mentionService *MentionService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newFakeUserRepo(),
		blips:         newFakeBlipRepo(),
		comments:      newFakeCommentRepo(),
		notifications: newFakeNotificationRepo(),
		blobs:         &fakeBlobStore{},
	}
	logger := zap.NewNop()
	env.notifier = NewNotificationService(env.notifications, logger)
	env.mentionService = NewMentionService(env.users, env.notifier, logger)
	env.userService = NewUserService(env.users, logger)
	env.blipService = NewBlipService(env.blips, env.users, env.notifier, env.mentionService, env.blobs, logger)
	env.commentService = NewCommentService(env.comments, env.blips, env.notifier, env.mentionService, logger)
	env.followService = NewFollowService(env.users, env.notifier, logger)
	env.feedService = NewFeedService(env.blips, env.users)
	env.searchService = NewSearchService(env.users, env.blips)
	return env
}

// addUser seeds a profile with empty social sets
func (env *testEnv) addUser(id, name, username string) *models.UserProfile {
	profile := &models.UserProfile{
		ID:        id,
		Name:      name,
		Username:  username,
		Email:     id + "@example.com",
		Followers: []string{},
		Following: []string{},
	}
	env.users.put(profile)
	return profile
}

// In-memory repository fakes. Each Create stamps a strictly increasing
// timestamp so ordering assertions are deterministic.

type fakeUserRepo struct {
	profiles map[string]*models.UserProfile

	addFollowerErr     error
	removeFollowerErr  error
	removeFollowingErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{profiles: make(map[string]*models.UserProfile)}
}

func (r *fakeUserRepo) put(profile *models.UserProfile) {
	profile.NameLower = strings.ToLower(profile.Name)
	r.profiles[profile.ID] = profile
}

func (r *fakeUserRepo) EnsureProfile(ctx context.Context, profile *models.UserProfile) error {
	if _, ok := r.profiles[profile.ID]; ok {
		return nil
	}
	stored := *profile
	stored.NameLower = strings.ToLower(stored.Name)
	stored.Followers = []string{}
	stored.Following = []string{}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	for _, profile := range r.profiles {
		if profile.Email == email {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	username = strings.ToLower(username)
	for _, profile := range r.profiles {
		if profile.Username == username {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id string, update repositories.ProfileUpdate) error {
	profile, ok := r.profiles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if update.Name != nil {
		profile.Name = *update.Name
		profile.NameLower = strings.ToLower(*update.Name)
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.PhotoURL != nil {
		profile.PhotoURL = *update.PhotoURL
	}
	profile.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) SetUsername(ctx context.Context, id, username string) error {
	profile, ok := r.profiles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	profile.Username = username
	return nil
}

func (r *fakeUserRepo) AddFollowing(ctx context.Context, userID, targetID string) error {
	profile, ok := r.profiles[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !slices.Contains(profile.Following, targetID) {
		profile.Following = append(profile.Following, targetID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveFollowing(ctx context.Context, userID, targetID string) error {
	if r.removeFollowingErr != nil {
		return r.removeFollowingErr
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	profile.Following = slices.DeleteFunc(profile.Following, func(id string) bool { return id == targetID })
	return nil
}

func (r *fakeUserRepo) AddFollower(ctx context.Context, userID, followerID string) error {
	if r.addFollowerErr != nil {
		return r.addFollowerErr
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !slices.Contains(profile.Followers, followerID) {
		profile.Followers = append(profile.Followers, followerID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveFollower(ctx context.Context, userID, followerID string) error {
	if r.removeFollowerErr != nil {
		return r.removeFollowerErr
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	profile.Followers = slices.DeleteFunc(profile.Followers, func(id string) bool { return id == followerID })
	return nil
}

func (r *fakeUserRepo) IncBlipsCount(ctx context.Context, id string, delta int) error {
	profile, ok := r.profiles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	profile.BlipsCount += delta
	return nil
}

func (r *fakeUserRepo) SearchByNamePrefix(ctx context.Context, prefix string, limit int64) ([]models.UserProfile, error) {
	var results []models.UserProfile
	for _, profile := range r.profiles {
		if strings.HasPrefix(profile.NameLower, prefix) && int64(len(results)) < limit {
			results = append(results, *profile)
		}
	}
	return results, nil
}

func (r *fakeUserRepo) SearchByUsernamePrefix(ctx context.Context, prefix string, limit int64) ([]models.UserProfile, error) {
	var results []models.UserProfile
	for _, profile := range r.profiles {
		if profile.Username != "" && strings.HasPrefix(profile.Username, prefix) && int64(len(results)) < limit {
			results = append(results, *profile)
		}
	}
	return results, nil
}

type fakeBlipRepo struct {
	blips map[string]*models.Blip
	clock time.Time
}

func newFakeBlipRepo() *fakeBlipRepo {
	return &fakeBlipRepo{
		blips: make(map[string]*models.Blip),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeBlipRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeBlipRepo) Create(ctx context.Context, blip *models.Blip) error {
	blip.ID = primitive.NewObjectID()
	blip.ContentLower = strings.ToLower(blip.Content)
	blip.CreatedAt = r.tick()
	if blip.Likes == nil {
		blip.Likes = []string{}
	}
	if blip.Reblips == nil {
		blip.Reblips = []string{}
	}
	stored := *blip
	r.blips[blip.ID.Hex()] = &stored
	return nil
}

func (r *fakeBlipRepo) GetByID(ctx context.Context, id string) (*models.Blip, error) {
	blip, ok := r.blips[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *blip
	return &copied, nil
}

func (r *fakeBlipRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.blips[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.blips, id)
	return nil
}

func (r *fakeBlipRepo) AddLike(ctx context.Context, blipID, userID string) error {
	blip, ok := r.blips[blipID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !slices.Contains(blip.Likes, userID) {
		blip.Likes = append(blip.Likes, userID)
	}
	return nil
}

func (r *fakeBlipRepo) RemoveLike(ctx context.Context, blipID, userID string) error {
	blip, ok := r.blips[blipID]
	if !ok {
		return repositories.ErrNotFound
	}
	blip.Likes = slices.DeleteFunc(blip.Likes, func(id string) bool { return id == userID })
	return nil
}

func (r *fakeBlipRepo) AddReblip(ctx context.Context, blipID, userID string) error {
	blip, ok := r.blips[blipID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !slices.Contains(blip.Reblips, userID) {
		blip.Reblips = append(blip.Reblips, userID)
	}
	return nil
}

func (r *fakeBlipRepo) RemoveReblip(ctx context.Context, blipID, userID string) error {
	blip, ok := r.blips[blipID]
	if !ok {
		return repositories.ErrNotFound
	}
	blip.Reblips = slices.DeleteFunc(blip.Reblips, func(id string) bool { return id == userID })
	return nil
}

func (r *fakeBlipRepo) IncCommentsCount(ctx context.Context, blipID string, delta int) error {
	blip, ok := r.blips[blipID]
	if !ok {
		return repositories.ErrNotFound
	}
	blip.CommentsCount += delta
	return nil
}

func (r *fakeBlipRepo) FindByAuthors(ctx context.Context, authorIDs []string, limit int64) ([]models.Blip, error) {
	return r.find(func(b *models.Blip) bool { return slices.Contains(authorIDs, b.AuthorID) }, limit), nil
}

func (r *fakeBlipRepo) FindByAuthor(ctx context.Context, authorID string, limit int64) ([]models.Blip, error) {
	return r.find(func(b *models.Blip) bool { return b.AuthorID == authorID }, limit), nil
}

func (r *fakeBlipRepo) FindAll(ctx context.Context, limit int64) ([]models.Blip, error) {
	return r.find(func(b *models.Blip) bool { return true }, limit), nil
}

func (r *fakeBlipRepo) FindLikedBy(ctx context.Context, userID string, limit int64) ([]models.Blip, error) {
	return r.find(func(b *models.Blip) bool { return slices.Contains(b.Likes, userID) }, limit), nil
}

func (r *fakeBlipRepo) FindReblippedBy(ctx context.Context, userID string, limit int64) ([]models.Blip, error) {
	return r.find(func(b *models.Blip) bool { return slices.Contains(b.Reblips, userID) }, limit), nil
}

func (r *fakeBlipRepo) SearchByContentPrefix(ctx context.Context, prefix string, limit int64) ([]models.Blip, error) {
	return r.find(func(b *models.Blip) bool { return strings.HasPrefix(b.ContentLower, prefix) }, limit), nil
}

func (r *fakeBlipRepo) find(match func(*models.Blip) bool, limit int64) []models.Blip {
	var results []models.Blip
	for _, blip := range r.blips {
		if match(blip) {
			results = append(results, *blip)
		}
	}
	slices.SortFunc(results, func(a, b models.Blip) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if int64(len(results)) > limit {
		results = results[:limit]
	}
	return results
}

type fakeCommentRepo struct {
	comments map[string]*models.Comment
	clock    time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[string]*models.Comment),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	r.clock = r.clock.Add(time.Second)
	comment.CreatedAt = r.clock
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	stored := *comment
	r.comments[comment.ID.Hex()] = &stored
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) FindByBlip(ctx context.Context, blipID string) ([]models.Comment, error) {
	return r.find(func(c *models.Comment) bool { return c.BlipID == blipID }), nil
}

func (r *fakeCommentRepo) FindReplies(ctx context.Context, parentID string) ([]models.Comment, error) {
	return r.find(func(c *models.Comment) bool { return c.ParentID == parentID }), nil
}

func (r *fakeCommentRepo) find(match func(*models.Comment) bool) []models.Comment {
	var results []models.Comment
	for _, comment := range r.comments {
		if match(comment) {
			results = append(results, *comment)
		}
	}
	slices.SortFunc(results, func(a, b models.Comment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return results
}

func (r *fakeCommentRepo) AddLike(ctx context.Context, commentID, userID string) error {
	comment, ok := r.comments[commentID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !slices.Contains(comment.Likes, userID) {
		comment.Likes = append(comment.Likes, userID)
	}
	return nil
}

func (r *fakeCommentRepo) RemoveLike(ctx context.Context, commentID, userID string) error {
	comment, ok := r.comments[commentID]
	if !ok {
		return repositories.ErrNotFound
	}
	comment.Likes = slices.DeleteFunc(comment.Likes, func(id string) bool { return id == userID })
	return nil
}

func (r *fakeCommentRepo) IncRepliesCount(ctx context.Context, commentID string, delta int) error {
	comment, ok := r.comments[commentID]
	if !ok {
		return repositories.ErrNotFound
	}
	comment.RepliesCount += delta
	return nil
}

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipient(userID string, limit int) ([]models.Notification, error) {
	var results []models.Notification
	for i := len(r.notifications) - 1; i >= 0 && len(results) < limit; i-- {
		if r.notifications[i].ToUserID == userID {
			results = append(results, r.notifications[i])
		}
	}
	return results, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.ToUserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id uint, userID string) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].ToUserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(userID string) error {
	for i := range r.notifications {
		if r.notifications[i].ToUserID == userID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

// byType filters recorded notifications for assertions
func (r *fakeNotificationRepo) byType(notifType string) []models.Notification {
	var results []models.Notification
	for _, n := range r.notifications {
		if n.Type == notifType {
			results = append(results, n)
		}
	}
	return results
}

type fakeBlobStore struct {
	deleted   []string
	deleteErr error
}

func (s *fakeBlobStore) Store(ctx context.Context, data []byte, pathHint string) (string, error) {
	return "https://storage.googleapis.com/test-bucket/" + pathHint + "/object", nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, objectURL string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, objectURL)
	return nil
}
