package dto

import (
	"backoffice/internal/access"
	"backoffice/internal/organization"
)

// 參考資料集合
type CatalogCollectionResponseDto struct {
	Collection organization.CollectionKind `json:"collection"`
	Count      int                         `json:"count"`
	Items      any                         `json:"items"`
}

// 頁面路由解析結果
type ViewResponseDto struct {
	Path string `json:"path"`
	access.Result
}
