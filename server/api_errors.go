package consoleserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	apierrors "github.com/Apurer/pizzeria-console/internal/shared/errors"
	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

var responder = apierrors.NewResponder("", notificationFailed)

// notificationFailed reports that the order change is stored even though
// the request failed.
func notificationFailed(err error) (apierrors.ProblemDetail, bool) {
	if !errors.Is(err, ordersapp.ErrNotificationFailed) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.ErrUpstream.
		WithDetail(err.Error()).
		WithExtension("kind", string(result.KindAdapter)).
		WithExtension("committed", true), true
}

func respondError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

// respondFailed writes a failed result and reports whether it did.
func respondFailed[T any](c *gin.Context, res result.Result[T]) bool {
	if res.IsFailed() {
		respondError(c, res.Err)
		return true
	}
	return false
}
