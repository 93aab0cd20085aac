package service

import (
	"strings"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/data"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
)

type CommentService interface {
	// AddComment 发一级评论
	AddComment(ownerID, videoID uint64, content string) (*dto.CommentResponse, error)
	// AddReply 回复一级评论；对回复再回复会被拒绝，评论树只有一层
	AddReply(ownerID, parentCommentID uint64, content string) (*dto.ReplyResponse, error)
	// ListByVideo 视频下的一级评论分页，每条带回复数
	ListByVideo(videoID uint64, page, limit int) (*dto.Page, error)
	// ListReplies 某条一级评论下的全部回复，按时间正序
	ListReplies(parentCommentID uint64) ([]dto.ReplyResponse, error)
	Update(actorID, commentID uint64, content string) (*dto.CommentResponse, error)
	// Delete 删一级评论时它的所有回复在同一个事务里一起删
	Delete(actorID, commentID uint64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	uow         data.UnitOfWork
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	uow data.UnitOfWork,
) CommentService {
	return &commentService{commentRepo: commentRepo, videoRepo: videoRepo, uow: uow}
}

func (s *commentService) AddComment(ownerID, videoID uint64, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.BadRequest("评论内容不能为空")
	}
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, apperr.Internal("查询视频失败", err)
	}

	comment := &model.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperr.Internal("发表评论失败", err)
	}

	created, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, apperr.Internal("查询评论失败", err)
	}
	resp := dto.ToCommentResponse(created, 0)
	return &resp, nil
}

// 回复逻辑：1、父评论必须存在 2、父评论必须是一级评论——评论树只有一层，
// 对回复再回复直接拒绝 3、回复挂在父评论所在的视频下
func (s *commentService) AddReply(ownerID, parentCommentID uint64, content string) (*dto.ReplyResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.BadRequest("回复内容不能为空")
	}

	parent, err := s.commentRepo.FindByID(parentCommentID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("评论不存在")
		}
		return nil, apperr.Internal("查询评论失败", err)
	}
	if parent.ParentID != nil {
		return nil, apperr.BadRequest("只能回复一级评论")
	}

	reply := &model.Comment{
		VideoID:  parent.VideoID,
		OwnerID:  ownerID,
		Content:  content,
		ParentID: &parent.ID,
	}
	if err := s.commentRepo.Create(reply); err != nil {
		return nil, apperr.Internal("发表回复失败", err)
	}

	created, err := s.commentRepo.FindByID(reply.ID)
	if err != nil {
		return nil, apperr.Internal("查询回复失败", err)
	}
	resp := dto.ToReplyResponse(created)
	return &resp, nil
}

// 列表逻辑：1、分页查一级评论 2、GROUP BY一次查出这一页所有评论的回复数，
// 避免每条评论一次COUNT的N+1查询
func (s *commentService) ListByVideo(videoID uint64, page, limit int) (*dto.Page, error) {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, apperr.Internal("查询视频失败", err)
	}

	page, limit, offset := dto.ParsePage(page, limit, 10)
	comments, total, err := s.commentRepo.FindTopLevelPage(videoID, offset, limit)
	if err != nil {
		return nil, apperr.Internal("查询评论列表失败", err)
	}

	parentIDs := make([]uint64, 0, len(comments))
	for i := range comments {
		parentIDs = append(parentIDs, comments[i].ID)
	}
	replyCounts, err := s.commentRepo.CountRepliesByParentIDs(parentIDs)
	if err != nil {
		return nil, apperr.Internal("统计回复数失败", err)
	}

	return dto.NewPage(dto.ToCommentResponses(comments, replyCounts), page, limit, total), nil
}

func (s *commentService) ListReplies(parentCommentID uint64) ([]dto.ReplyResponse, error) {
	parent, err := s.commentRepo.FindByID(parentCommentID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("评论不存在")
		}
		return nil, apperr.Internal("查询评论失败", err)
	}
	if parent.ParentID != nil {
		return nil, apperr.BadRequest("只有一级评论才有回复列表")
	}
	replies, err := s.commentRepo.FindRepliesByParent(parentCommentID)
	if err != nil {
		return nil, apperr.Internal("查询回复列表失败", err)
	}
	return dto.ToReplyResponses(replies), nil
}

func (s *commentService) Update(actorID, commentID uint64, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.BadRequest("评论内容不能为空")
	}
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("评论不存在")
		}
		return nil, apperr.Internal("查询评论失败", err)
	}
	if comment.OwnerID != actorID {
		return nil, apperr.Forbidden("没有权限操作别人的评论")
	}
	if err := s.commentRepo.UpdateContent(commentID, content); err != nil {
		return nil, apperr.Internal("更新评论失败", err)
	}

	updated, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, apperr.Internal("查询评论失败", err)
	}
	replyCounts, err := s.commentRepo.CountRepliesByParentIDs([]uint64{commentID})
	if err != nil {
		return nil, apperr.Internal("统计回复数失败", err)
	}
	resp := dto.ToCommentResponse(updated, replyCounts[commentID])
	return &resp, nil
}

// 删除逻辑：1、只有作者本人能删 2、一级评论和它的N条回复、以及指向这些
// 评论的赞在同一个事务里消失——要么全删掉，要么一条不动
func (s *commentService) Delete(actorID, commentID uint64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if isNotFound(err) {
			return apperr.NotFound("评论不存在")
		}
		return apperr.Internal("查询评论失败", err)
	}
	if comment.OwnerID != actorID {
		return apperr.Forbidden("没有权限操作别人的评论")
	}

	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if comment.ParentID == nil {
			if err := repos.CommentRepo.DeleteRepliesOf(commentID); err != nil {
				return err
			}
		}
		if err := repos.LikeRepo.DeleteByTargetIDs(model.TargetComment, []uint64{commentID}); err != nil {
			return err
		}
		return repos.CommentRepo.Delete(commentID)
	})
	if err != nil {
		return apperr.Internal("删除评论失败", err)
	}
	return nil
}
