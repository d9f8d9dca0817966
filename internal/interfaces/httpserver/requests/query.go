package requests

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-server/internal/domain/query"
	"crm-server/internal/utils/platformerrors"
)

func GetCursorPaginationFromQuery(reqCtx *gin.Context, findByLastID func(string) (*uint, error)) (*query.Pagination, error) {
	limitStr := reqCtx.DefaultQuery("limit", "20")
	offsetStr := reqCtx.Query("offset")
	order := reqCtx.DefaultQuery("order", "desc")
	afterStr := reqCtx.DefaultQuery("after", "")
	if afterStr == "" {
		if cursor := reqCtx.Query("cursor"); cursor != "" {
			afterStr = cursor
		}
	}

	var limit *int
	if limitStr != "" {
		limitInt, err := strconv.Atoi(limitStr)
		if err != nil || limitInt < 1 {
			return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid limit number", nil, "e7b2a9c4-3d8f-4e1a-b6c5-9f2d7e4a8b10")
		}
		limit = &limitInt
	}

	var offset *int
	var after *uint
	if offsetStr != "" {
		offsetInt, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid offset number", nil, "a1c8e4b2-7f9d-4c3e-8a6b-2e5f9d1c7a40")
		}
		offset = &offsetInt
	} else if afterStr != "" {
		if findByLastID != nil {
			lastID, err := findByLastID(afterStr)
			if err != nil {
				return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid pagination cursor", err, "5d9f2b7e-1a4c-4e8b-9c3d-7b6e2f8a4c20")
			}
			after = lastID
		} else {
			parsedID, err := strconv.ParseUint(afterStr, 10, 64)
			if err != nil {
				return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid pagination cursor", err, "8b3c6e1a-9d4f-4a7e-b2c8-5f1d9e7a3b60")
			}
			tempID := uint(parsedID)
			after = &tempID
		}
	}

	if order != "asc" && order != "desc" {
		return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid order", nil, "2e7a4c9b-6f1d-4b8e-a5c3-8d2f7b9e1c50")
	}

	return &query.Pagination{
		Limit:  limit,
		Offset: offset,
		Order:  order,
		After:  after,
	}, nil
}

func GetPaginationFromQuery(reqCtx *gin.Context) (*query.Pagination, error) {
	return GetCursorPaginationFromQuery(reqCtx, nil)
}
