package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"Nebula_Tube/internal/data"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// 内存版的repository实现，行为上尽量贴近MySQL：
// 唯一索引冲突返回1062，找不到返回gorm.ErrRecordNotFound

func duplicateKeyErr() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

// ---- fakeStorage ----

// 内存版对象存储：记录传了什么、删了什么，URL格式和真实现保持一致
type fakeStorage struct {
	uploads []string // 已上传的objectName
	removed []string
	calls   int
	failOn  int // 第几次上传失败（1起算），0表示不失败
}

func (f *fakeStorage) UploadLocalFile(ctx context.Context, localPath, folder, contentType string) (string, string, error) {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return "", "", errors.New("对象存储不可用")
	}
	objectName := fmt.Sprintf("%s/%d", folder, len(f.uploads))
	f.uploads = append(f.uploads, objectName)
	return "https://cdn.test/media/" + objectName, objectName, nil
}

func (f *fakeStorage) RemoveObject(ctx context.Context, objectName string) {
	f.removed = append(f.removed, objectName)
}

// ---- fakeUserRepo ----

type fakeUserRepo struct {
	repository.UserRepository
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User), nextID: 1}
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepository { return f }

func (f *fakeUserRepo) Create(user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return duplicateKeyErr()
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(userID uint64) (*model.User, error) {
	if u, ok := f.users[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsernameOrEmail(identifier string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsEmailExcept(email string, userID uint64) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByID(userID uint64) (bool, error) {
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeUserRepo) UpdateFields(userID uint64, fields map[string]interface{}) error {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	if v, ok := fields["full_name"]; ok {
		u.FullName = v.(string)
	}
	if v, ok := fields["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := fields["avatar"]; ok {
		u.Avatar = v.(string)
	}
	if v, ok := fields["cover_image"]; ok {
		u.CoverImage = v.(string)
	}
	return nil
}

func (f *fakeUserRepo) UpdateRefreshToken(userID uint64, refreshToken string) error {
	if u, ok := f.users[userID]; ok {
		u.RefreshToken = refreshToken
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(userID uint64, hashed string) error {
	if u, ok := f.users[userID]; ok {
		u.Password = hashed
	}
	return nil
}

func (f *fakeUserRepo) Delete(userID uint64) error {
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) SearchByName(keyword string, limit int) ([]model.User, error) {
	var result []model.User
	lower := strings.ToLower(keyword)
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), lower) ||
			strings.Contains(strings.ToLower(u.FullName), lower) {
			result = append(result, *u)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// ---- fakeVideoRepo ----

type fakeVideoRepo struct {
	repository.VideoRepository
	videos map[uint64]*model.Video
	nextID uint64
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uint64]*model.Video), nextID: 1}
}

func (f *fakeVideoRepo) WithTx(tx *gorm.DB) repository.VideoRepository { return f }

func (f *fakeVideoRepo) Create(video *model.Video) error {
	video.ID = f.nextID
	f.nextID++
	video.CreatedAt = time.Now()
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) FindByID(videoID uint64) (*model.Video, error) {
	if v, ok := f.videos[videoID]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVideoRepo) IDsByOwner(ownerID uint64) ([]uint64, error) {
	var ids []uint64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			ids = append(ids, v.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeVideoRepo) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeVideoRepo) SumViewsByOwner(ownerID uint64) (int64, error) {
	var total int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			total += int64(v.Views)
		}
	}
	return total, nil
}

func (f *fakeVideoRepo) UpdateFields(videoID uint64, fields map[string]interface{}) error {
	v, ok := f.videos[videoID]
	if !ok {
		return nil
	}
	if val, ok := fields["title"]; ok {
		v.Title = val.(string)
	}
	if val, ok := fields["description"]; ok {
		v.Description = val.(string)
	}
	if val, ok := fields["thumbnail"]; ok {
		v.Thumbnail = val.(string)
	}
	return nil
}

func (f *fakeVideoRepo) IncrementViews(videoID uint64) error {
	if v, ok := f.videos[videoID]; ok {
		v.Views++
	}
	return nil
}

func (f *fakeVideoRepo) Delete(videoID uint64) error {
	delete(f.videos, videoID)
	return nil
}

func (f *fakeVideoRepo) DeleteByOwner(ownerID uint64) error {
	for id, v := range f.videos {
		if v.OwnerID == ownerID {
			delete(f.videos, id)
		}
	}
	return nil
}

func (f *fakeVideoRepo) FindRecentByOwner(ownerID uint64, limit int) ([]model.Video, error) {
	var result []model.Video
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			result = append(result, *v)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (f *fakeVideoRepo) FindPublishedPage(offset, limit int) ([]model.Video, int64, error) {
	var all []model.Video
	for _, v := range f.videos {
		if v.IsPublished {
			all = append(all, *v)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeVideoRepo) FindByOwnerPage(ownerID uint64, offset, limit int) ([]model.Video, int64, error) {
	var all []model.Video
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			all = append(all, *v)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeVideoRepo) SearchPublished(keyword string, limit int) ([]model.Video, error) {
	var result []model.Video
	lower := strings.ToLower(keyword)
	for _, v := range f.videos {
		if !v.IsPublished {
			continue
		}
		if strings.Contains(strings.ToLower(v.Title), lower) ||
			strings.Contains(strings.ToLower(v.Description), lower) {
			result = append(result, *v)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// 缓存三件套在测试里全部直通数据库
func (f *fakeVideoRepo) GetVideoCache(videoID uint64) (*model.Video, error) { return nil, nil }
func (f *fakeVideoRepo) SetVideoCache(video *model.Video) error             { return nil }
func (f *fakeVideoRepo) DelVideoCache(videoID uint64) error                 { return nil }

// ---- fakeLikeRepo ----

type fakeLikeRepo struct {
	repository.LikeRepository
	likes  map[uint64]*model.Like
	nextID uint64
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[uint64]*model.Like), nextID: 1}
}

func (f *fakeLikeRepo) WithTx(tx *gorm.DB) repository.LikeRepository { return f }

func likeKey(likedByID, targetID uint64, targetType model.TargetType) string {
	return fmt.Sprintf("%d|%d|%s", likedByID, targetID, targetType)
}

func (f *fakeLikeRepo) Create(like *model.Like) error {
	key := likeKey(like.LikedByID, like.TargetID, like.TargetType)
	for _, l := range f.likes {
		if likeKey(l.LikedByID, l.TargetID, l.TargetType) == key {
			return duplicateKeyErr()
		}
	}
	like.ID = f.nextID
	f.nextID++
	f.likes[like.ID] = like
	return nil
}

func (f *fakeLikeRepo) Find(likedByID, targetID uint64, targetType model.TargetType) (*model.Like, error) {
	for _, l := range f.likes {
		if l.LikedByID == likedByID && l.TargetID == targetID && l.TargetType == targetType {
			copied := *l
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLikeRepo) Exists(likedByID, targetID uint64, targetType model.TargetType) (bool, error) {
	_, err := f.Find(likedByID, targetID, targetType)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeLikeRepo) DeleteByID(likeID uint64) error {
	delete(f.likes, likeID)
	return nil
}

func (f *fakeLikeRepo) Count(targetID uint64, targetType model.TargetType) (int64, error) {
	var count int64
	for _, l := range f.likes {
		if l.TargetID == targetID && l.TargetType == targetType {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeRepo) CountByTargetIDs(targetType model.TargetType, targetIDs []uint64) (int64, error) {
	var count int64
	for _, l := range f.likes {
		if l.TargetType != targetType {
			continue
		}
		for _, id := range targetIDs {
			if l.TargetID == id {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeLikeRepo) DeleteByUser(likedByID uint64) error {
	for id, l := range f.likes {
		if l.LikedByID == likedByID {
			delete(f.likes, id)
		}
	}
	return nil
}

func (f *fakeLikeRepo) DeleteByTargetIDs(targetType model.TargetType, targetIDs []uint64) error {
	for id, l := range f.likes {
		if l.TargetType != targetType {
			continue
		}
		for _, tid := range targetIDs {
			if l.TargetID == tid {
				delete(f.likes, id)
				break
			}
		}
	}
	return nil
}

// ---- fakeSubscriptionRepo ----

type fakeSubscriptionRepo struct {
	repository.SubscriptionRepository
	subs   map[uint64]*model.Subscription
	nextID uint64
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uint64]*model.Subscription), nextID: 1}
}

func (f *fakeSubscriptionRepo) WithTx(tx *gorm.DB) repository.SubscriptionRepository { return f }

func (f *fakeSubscriptionRepo) Create(sub *model.Subscription) error {
	for _, s := range f.subs {
		if s.SubscriberID == sub.SubscriberID && s.ChannelID == sub.ChannelID {
			return duplicateKeyErr()
		}
	}
	sub.ID = f.nextID
	f.nextID++
	sub.CreatedAt = time.Now()
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeSubscriptionRepo) Find(subscriberID, channelID uint64) (*model.Subscription, error) {
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID && s.ChannelID == channelID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubscriptionRepo) Exists(subscriberID, channelID uint64) (bool, error) {
	_, err := f.Find(subscriberID, channelID)
	return err == nil, nil
}

func (f *fakeSubscriptionRepo) DeleteByID(subID uint64) error {
	delete(f.subs, subID)
	return nil
}

func (f *fakeSubscriptionRepo) ListSubscribers(channelID uint64) ([]model.Subscription, error) {
	var result []model.Subscription
	for _, s := range f.subs {
		if s.ChannelID == channelID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (f *fakeSubscriptionRepo) ListChannels(subscriberID uint64) ([]model.Subscription, error) {
	var result []model.Subscription
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (f *fakeSubscriptionRepo) ChannelIDsOf(subscriberID uint64) ([]uint64, error) {
	var ids []uint64
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID {
			ids = append(ids, s.ChannelID)
		}
	}
	return ids, nil
}

func (f *fakeSubscriptionRepo) CountSubscribers(channelID uint64) (int64, error) {
	var count int64
	for _, s := range f.subs {
		if s.ChannelID == channelID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubscriptionRepo) CountSubscribedTo(subscriberID uint64) (int64, error) {
	var count int64
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubscriptionRepo) DeleteByUser(userID uint64) error {
	for id, s := range f.subs {
		if s.SubscriberID == userID || s.ChannelID == userID {
			delete(f.subs, id)
		}
	}
	return nil
}

// ---- fakeCommentRepo ----

type fakeCommentRepo struct {
	repository.CommentRepository
	comments map[uint64]*model.Comment
	nextID   uint64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint64]*model.Comment), nextID: 1}
}

func (f *fakeCommentRepo) WithTx(tx *gorm.DB) repository.CommentRepository { return f }

func (f *fakeCommentRepo) Create(comment *model.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	comment.CreatedAt = time.Now()
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(commentID uint64) (*model.Comment, error) {
	if c, ok := f.comments[commentID]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommentRepo) FindTopLevelPage(videoID uint64, offset, limit int) ([]model.Comment, int64, error) {
	var all []model.Comment
	for _, c := range f.comments {
		if c.VideoID == videoID && c.ParentID == nil {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeCommentRepo) CountRepliesByParentIDs(parentIDs []uint64) (map[uint64]int64, error) {
	result := make(map[uint64]int64)
	for _, c := range f.comments {
		if c.ParentID == nil {
			continue
		}
		for _, pid := range parentIDs {
			if *c.ParentID == pid {
				result[pid]++
				break
			}
		}
	}
	return result, nil
}

func (f *fakeCommentRepo) FindRepliesByParent(parentID uint64) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeCommentRepo) FindRecentByOwner(ownerID uint64, limit int) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range f.comments {
		if c.OwnerID == ownerID {
			result = append(result, *c)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (f *fakeCommentRepo) UpdateContent(commentID uint64, content string) error {
	if c, ok := f.comments[commentID]; ok {
		c.Content = content
	}
	return nil
}

func (f *fakeCommentRepo) Delete(commentID uint64) error {
	delete(f.comments, commentID)
	return nil
}

func (f *fakeCommentRepo) DeleteRepliesOf(parentID uint64) error {
	for id, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeCommentRepo) DeleteByOwner(ownerID uint64) error {
	for id, c := range f.comments {
		if c.OwnerID == ownerID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeCommentRepo) DeleteByVideoIDs(videoIDs []uint64) error {
	for id, c := range f.comments {
		for _, vid := range videoIDs {
			if c.VideoID == vid {
				delete(f.comments, id)
				break
			}
		}
	}
	return nil
}

// ---- fakePlaylistRepo ----

type fakePlaylistRepo struct {
	repository.PlaylistRepository
	playlists map[uint64]*model.Playlist
	items     map[uint64]*model.PlaylistVideo
	nextID    uint64
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: make(map[uint64]*model.Playlist),
		items:     make(map[uint64]*model.PlaylistVideo),
		nextID:    1,
	}
}

func (f *fakePlaylistRepo) WithTx(tx *gorm.DB) repository.PlaylistRepository { return f }

func (f *fakePlaylistRepo) Create(playlist *model.Playlist) error {
	for _, p := range f.playlists {
		if p.OwnerID == playlist.OwnerID && p.Name == playlist.Name {
			return duplicateKeyErr()
		}
	}
	playlist.ID = f.nextID
	f.nextID++
	playlist.CreatedAt = time.Now()
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistRepo) FindByID(playlistID uint64) (*model.Playlist, error) {
	if p, ok := f.playlists[playlistID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlaylistRepo) FindByOwner(ownerID uint64) ([]model.Playlist, error) {
	var result []model.Playlist
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakePlaylistRepo) IDsByOwner(ownerID uint64) ([]uint64, error) {
	var ids []uint64
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (f *fakePlaylistRepo) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakePlaylistRepo) UpdateFields(playlistID uint64, fields map[string]interface{}) error {
	p, ok := f.playlists[playlistID]
	if !ok {
		return nil
	}
	if v, ok := fields["name"]; ok {
		name := v.(string)
		for _, other := range f.playlists {
			if other.ID != playlistID && other.OwnerID == p.OwnerID && other.Name == name {
				return duplicateKeyErr()
			}
		}
		p.Name = name
	}
	if v, ok := fields["description"]; ok {
		p.Description = v.(string)
	}
	return nil
}

func (f *fakePlaylistRepo) Delete(playlistID uint64) error {
	delete(f.playlists, playlistID)
	return nil
}

func (f *fakePlaylistRepo) DeleteByOwner(ownerID uint64) error {
	for id, p := range f.playlists {
		if p.OwnerID == ownerID {
			delete(f.playlists, id)
		}
	}
	return nil
}

func (f *fakePlaylistRepo) AddVideo(item *model.PlaylistVideo) error {
	for _, it := range f.items {
		if it.PlaylistID == item.PlaylistID && it.VideoID == item.VideoID {
			return duplicateKeyErr()
		}
	}
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = item
	return nil
}

func (f *fakePlaylistRepo) RemoveVideo(playlistID, videoID uint64) (int64, error) {
	var removed int64
	for id, it := range f.items {
		if it.PlaylistID == playlistID && it.VideoID == videoID {
			delete(f.items, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakePlaylistRepo) FindVideos(playlistID uint64) ([]model.PlaylistVideo, error) {
	var result []model.PlaylistVideo
	for _, it := range f.items {
		if it.PlaylistID == playlistID {
			result = append(result, *it)
		}
	}
	return result, nil
}

func (f *fakePlaylistRepo) DeleteVideosOfPlaylist(playlistID uint64) error {
	for id, it := range f.items {
		if it.PlaylistID == playlistID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakePlaylistRepo) DeleteVideosOfPlaylists(playlistIDs []uint64) error {
	for _, pid := range playlistIDs {
		f.DeleteVideosOfPlaylist(pid)
	}
	return nil
}

func (f *fakePlaylistRepo) DeleteVideoRefs(videoIDs []uint64) error {
	for id, it := range f.items {
		for _, vid := range videoIDs {
			if it.VideoID == vid {
				delete(f.items, id)
				break
			}
		}
	}
	return nil
}

// ---- fakeTweetRepo ----

type fakeTweetRepo struct {
	repository.TweetRepository
	tweets map[uint64]*model.Tweet
	nextID uint64
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: make(map[uint64]*model.Tweet), nextID: 1}
}

func (f *fakeTweetRepo) WithTx(tx *gorm.DB) repository.TweetRepository { return f }

func (f *fakeTweetRepo) Create(tweet *model.Tweet) error {
	tweet.ID = f.nextID
	f.nextID++
	tweet.CreatedAt = time.Now()
	f.tweets[tweet.ID] = tweet
	return nil
}

func (f *fakeTweetRepo) FindByID(tweetID uint64) (*model.Tweet, error) {
	if t, ok := f.tweets[tweetID]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTweetRepo) FindPage(offset, limit int) ([]model.Tweet, int64, error) {
	var all []model.Tweet
	for _, t := range f.tweets {
		all = append(all, *t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeTweetRepo) FindByOwnerPage(ownerID uint64, offset, limit int) ([]model.Tweet, int64, error) {
	return f.FindByOwnersPage([]uint64{ownerID}, offset, limit)
}

func (f *fakeTweetRepo) FindByOwnersPage(ownerIDs []uint64, offset, limit int) ([]model.Tweet, int64, error) {
	var all []model.Tweet
	for _, t := range f.tweets {
		for _, oid := range ownerIDs {
			if t.OwnerID == oid {
				all = append(all, *t)
				break
			}
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeTweetRepo) IDsByOwner(ownerID uint64) ([]uint64, error) {
	var ids []uint64
	for _, t := range f.tweets {
		if t.OwnerID == ownerID {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

func (f *fakeTweetRepo) Delete(tweetID uint64) error {
	delete(f.tweets, tweetID)
	return nil
}

func (f *fakeTweetRepo) DeleteByOwner(ownerID uint64) error {
	for id, t := range f.tweets {
		if t.OwnerID == ownerID {
			delete(f.tweets, id)
		}
	}
	return nil
}

// ---- fakeWatchRepo ----

type fakeWatchRepo struct {
	repository.WatchRepository
	entries map[uint64]*model.WatchHistory
	nextID  uint64
}

func newFakeWatchRepo() *fakeWatchRepo {
	return &fakeWatchRepo{entries: make(map[uint64]*model.WatchHistory), nextID: 1}
}

func (f *fakeWatchRepo) WithTx(tx *gorm.DB) repository.WatchRepository { return f }

func (f *fakeWatchRepo) Create(entry *model.WatchHistory) error {
	for _, e := range f.entries {
		if e.UserID == entry.UserID && e.VideoID == entry.VideoID {
			return duplicateKeyErr()
		}
	}
	entry.ID = f.nextID
	f.nextID++
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeWatchRepo) Find(userID, videoID uint64) (*model.WatchHistory, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.VideoID == videoID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWatchRepo) TouchWatchedAt(entryID uint64, watchedAt time.Time) error {
	if e, ok := f.entries[entryID]; ok {
		e.WatchedAt = watchedAt
	}
	return nil
}

func (f *fakeWatchRepo) FindPage(userID uint64, offset, limit int) ([]model.WatchHistory, int64, error) {
	var all []model.WatchHistory
	for _, e := range f.entries {
		if e.UserID == userID {
			all = append(all, *e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].WatchedAt.After(all[j].WatchedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeWatchRepo) FindRecent(userID uint64, limit int) ([]model.WatchHistory, error) {
	entries, _, err := f.FindPage(userID, 0, limit)
	return entries, err
}

func (f *fakeWatchRepo) DeleteOne(userID, videoID uint64) (int64, error) {
	var removed int64
	for id, e := range f.entries {
		if e.UserID == userID && e.VideoID == videoID {
			delete(f.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeWatchRepo) DeleteAllByUser(userID uint64) error {
	for id, e := range f.entries {
		if e.UserID == userID {
			delete(f.entries, id)
		}
	}
	return nil
}

func (f *fakeWatchRepo) DeleteByVideoIDs(videoIDs []uint64) error {
	for id, e := range f.entries {
		for _, vid := range videoIDs {
			if e.VideoID == vid {
				delete(f.entries, id)
				break
			}
		}
	}
	return nil
}

// ---- fakeUnitOfWork ----

// 不开真事务，直接把同一组fake repo递给业务函数
type fakeUnitOfWork struct {
	repos *data.TransactionalRepositories
}

func (u *fakeUnitOfWork) Execute(fn func(repos *data.TransactionalRepositories) error) error {
	return fn(u.repos)
}

// ---- fakePublisher ----

type fakePublisher struct {
	published []interface{}
	failNext  bool
}

func (p *fakePublisher) Publish(message interface{}) error {
	if p.failNext {
		p.failNext = false
		return fmt.Errorf("连接已断开")
	}
	p.published = append(p.published, message)
	return nil
}
