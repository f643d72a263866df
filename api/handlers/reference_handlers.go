package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"refdeck/dto"
	"refdeck/services"
)

// EnrichHandler runs one bounded enrichment pass over references flagged
// for re-analysis.
func EnrichHandler(svc *services.ReferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := svc.EnrichPending(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		if len(ids) == 0 {
			c.JSON(http.StatusOK, dto.EnrichResponseDTO{Message: "nothing to enrich"})
			return
		}
		c.JSON(http.StatusOK, dto.EnrichResponseDTO{
			Message:       "enrichment finished",
			EnrichedCount: len(ids),
			IDs:           ids,
		})
	}
}

// ListReferencesHandler returns references newest first with pagination.
func ListReferencesHandler(svc *services.ReferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		refs, total, err := svc.ListReferences(c.Request.Context(), page, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		out := make([]dto.ReferenceDTO, 0, len(refs))
		for _, ref := range refs {
			out = append(out, dto.FromReference(ref))
		}
		c.JSON(http.StatusOK, dto.Pagination[dto.ReferenceDTO]{
			Data:     out,
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		})
	}
}
