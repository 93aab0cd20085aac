package dto

import (
	"time"

	"Nebula_Tube/internal/model"
)

// CommentResponse 是一级评论的响应结构，带回复数但不带回复本体（回复按需拉取）
type CommentResponse struct {
	ID         uint64    `json:"id"`
	VideoID    uint64    `json:"videoId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Owner      UserInfo  `json:"owner"`
	ReplyCount int64     `json:"replyCount"`
}

// ReplyResponse 是二级回复的响应结构
type ReplyResponse struct {
	ID        uint64    `json:"id"`
	VideoID   uint64    `json:"videoId"`
	ParentID  uint64    `json:"parentId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Owner     UserInfo  `json:"owner"`
}

func ToCommentResponse(comment *model.Comment, replyCount int64) CommentResponse {
	resp := CommentResponse{
		ID:         comment.ID,
		VideoID:    comment.VideoID,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
		ReplyCount: replyCount,
	}
	// 安全地填充作者信息，preload失败时不至于panic
	if comment.Owner.ID != 0 {
		resp.Owner = ToUserInfo(&comment.Owner)
	}
	return resp
}

// ToCommentResponses 把一级评论列表和"父评论ID→回复数"的map拼到一起
func ToCommentResponses(comments []model.Comment, replyCounts map[uint64]int64) []CommentResponse {
	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, ToCommentResponse(&comments[i], replyCounts[comments[i].ID]))
	}
	return response
}

func ToReplyResponse(reply *model.Comment) ReplyResponse {
	resp := ReplyResponse{
		ID:        reply.ID,
		VideoID:   reply.VideoID,
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt,
	}
	if reply.ParentID != nil {
		resp.ParentID = *reply.ParentID
	}
	if reply.Owner.ID != 0 {
		resp.Owner = ToUserInfo(&reply.Owner)
	}
	return resp
}

func ToReplyResponses(replies []model.Comment) []ReplyResponse {
	response := make([]ReplyResponse, 0, len(replies))
	for i := range replies {
		response = append(response, ToReplyResponse(&replies[i]))
	}
	return response
}
