package httptransport

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	bakerycommand "github.com/goliatone/go-bakery/command"
	"github.com/goliatone/go-bakery/core"
	gocmd "github.com/goliatone/go-command"
)

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	form := core.InquiryForm{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		Company:   r.FormValue("company"),
		Message:   r.FormValue("message"),
		Website:   r.FormValue("website"),
		SourceURL: r.Referer(),
	}

	collector := gocmd.NewResult[core.InquiryReceipt]()
	ctx := gocmd.ContextWithResult(r.Context(), collector)
	if err := h.facade.Commands().SubmitInquiry.Execute(ctx, bakerycommand.SubmitInquiryMessage{
		Token: h.cookies.Token(r),
		Form:  form,
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	receipt, ok := collector.Load()
	if !ok {
		h.writeError(w, r, fmt.Errorf("httptransport: checkout produced no receipt"))
		return
	}
	if receipt.ClearCart {
		h.cookies.Clear(w)
	}
	if receipt.Notification.Status == core.NotificationStatusFailed {
		h.logger.WithContext(r.Context()).Warn("inquiry stored without notification",
			"inquiry_id", receipt.InquiryID,
			"reason", receipt.Notification.Reason,
		)
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, receipt)
		return
	}
	redirect(w, r, "/thank-you/"+url.PathEscape(receipt.InquiryID))
}

func (h *Handler) thankYou(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"inquiry_id": chi.URLParam(r, "inquiryID")})
}
