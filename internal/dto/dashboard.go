package dto

// DashboardTotals 各种计数，来自互相独立的查询，不保证同一时刻的快照一致性
type DashboardTotals struct {
	Videos        int64 `json:"videos"`
	Subscribers   int64 `json:"subscribers"`
	SubscribedTo  int64 `json:"subscribedTo"`
	LikesReceived int64 `json:"likesReceived"`
	Playlists     int64 `json:"playlists"`
	TotalViews    int64 `json:"totalViews"`
}

// DashboardRecent 最近动态的切片
type DashboardRecent struct {
	Uploads  []VideoResponse    `json:"uploads"`
	Comments []CommentResponse  `json:"comments"`
	Watched  []WatchHistoryItem `json:"watched"`
}

type DashboardResponse struct {
	Totals DashboardTotals `json:"totals"`
	Recent DashboardRecent `json:"recent"`
}

// SearchResponse 搜索结果：两组并列返回，不做合并排序
type SearchResponse struct {
	Videos []VideoResponse `json:"videos"`
	Users  []UserInfo      `json:"users"`
}

// LikeStatus 点赞toggle/查询的统一返回：操作后的状态 + 最新计数
type LikeStatus struct {
	IsLiked   bool  `json:"isLiked"`
	LikeCount int64 `json:"likeCount"`
}

// SubscriptionStatus 订阅toggle/查询的统一返回
type SubscriptionStatus struct {
	IsSubscribed    bool  `json:"isSubscribed"`
	SubscriberCount int64 `json:"subscriberCount"`
}
