package dto

// Page 是所有列表接口共用的分页信封
type Page struct {
	Items       interface{} `json:"items"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
	TotalDocs   int64       `json:"totalDocs"`
	TotalPages  int         `json:"totalPages"`
	HasNextPage bool        `json:"hasNextPage"`
	HasPrevPage bool        `json:"hasPrevPage"`
}

// NewPage 按总数算好页数和前后页标记
func NewPage(items interface{}, page, limit int, total int64) *Page {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Page{
		Items:       items,
		Page:        page,
		Limit:       limit,
		TotalDocs:   total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
	}
}

// ParsePage 把查询参数里的page/limit收敛到合法范围
func ParsePage(page, limit, defaultLimit int) (int, int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit
	return page, limit, offset
}
