package dto

import (
	"time"

	"Nebula_Tube/internal/model"
)

type TweetResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Owner     UserInfo  `json:"owner"`
}

func ToTweetResponse(tweet *model.Tweet) TweetResponse {
	resp := TweetResponse{
		ID:        tweet.ID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
	}
	if tweet.Owner.ID != 0 {
		resp.Owner = ToUserInfo(&tweet.Owner)
	}
	return resp
}

func ToTweetResponses(tweets []model.Tweet) []TweetResponse {
	response := make([]TweetResponse, 0, len(tweets))
	for i := range tweets {
		response = append(response, ToTweetResponse(&tweets[i]))
	}
	return response
}
