package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mxmCherry/openrtb/v15/openrtb2"
	"github.com/shopspring/decimal"

	"geo-bidder/internal/core/domain"
)

var (
	errNoImp = errors.New("request has no imp")
	errNoGeo = errors.New("request has no device.geo")
)

// handleOpenRTB evaluates an OpenRTB 2.5 bid request. Only the first imp is
// considered. A bid is answered with a single seatbid, a no-bid with HTTP 204.
func (h *Handler) handleOpenRTB(w http.ResponseWriter, r *http.Request) {
	var ortb openrtb2.BidRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&ortb); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	req, err := fromOpenRTB(&ortb)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	decision := h.svc.Evaluate(req)
	if !decision.IsBid() {
		w.Header().Set("X-No-Bid-Reason", string(decision.Reason))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := openrtb2.BidResponse{
		ID: ortb.ID,
		SeatBid: []openrtb2.SeatBid{{
			Bid: []openrtb2.Bid{{
				ID:    ortb.ID + "-" + ortb.Imp[0].ID,
				ImpID: ortb.Imp[0].ID,
				Price: decision.BidPrice.Float64(),
				CID:   decision.CampaignID,
			}},
		}},
	}
	if len(ortb.Cur) > 0 {
		resp.Cur = ortb.Cur[0]
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// fromOpenRTB maps the first imp and the device position onto a bid
// request.
func fromOpenRTB(ortb *openrtb2.BidRequest) (domain.BidRequest, error) {
	if len(ortb.Imp) == 0 {
		return domain.BidRequest{}, errNoImp
	}
	if ortb.Device == nil || ortb.Device.Geo == nil {
		return domain.BidRequest{}, errNoGeo
	}
	imp := &ortb.Imp[0]
	floor, err := domain.MoneyFromDecimal(decimal.NewFromFloat(imp.BidFloor))
	if err != nil {
		return domain.BidRequest{}, fmt.Errorf("imp.bidfloor: %w", err)
	}
	req := domain.BidRequest{
		RequestID:  ortb.ID,
		Location:   domain.GeoPoint{Lat: ortb.Device.Geo.Lat, Lon: ortb.Device.Geo.Lon},
		AdFormat:   impFormat(imp),
		FloorPrice: floor,
	}
	if ortb.User != nil {
		req.UserID = ortb.User.ID
	}
	switch {
	case ortb.Site != nil && ortb.Site.Publisher != nil:
		req.PublisherID = ortb.Site.Publisher.ID
	case ortb.App != nil && ortb.App.Publisher != nil:
		req.PublisherID = ortb.App.Publisher.ID
	}
	return req, nil
}

// impFormat names the catalog ad format of imp. Interstitial wins over the
// media object so that an interstitial banner targets interstitial campaigns.
func impFormat(imp *openrtb2.Imp) string {
	switch {
	case imp.Instl == 1:
		return "interstitial"
	case imp.Video != nil:
		return "video"
	case imp.Native != nil:
		return "native"
	case imp.Banner != nil:
		return "banner"
	default:
		return ""
	}
}
