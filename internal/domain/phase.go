package domain

// PhaseDisplay describes how a request's current phase is rendered:
// a human-readable label, a color tag, and an icon name.
type PhaseDisplay struct {
	Text     string `json:"text"`
	ColorTag string `json:"color_tag"`
	Icon     string `json:"icon"`
}

// UnknownPhase is returned for any status value this mapper does not
// recognize. DisplayPhase must never fail on novel backend values.
var UnknownPhase = PhaseDisplay{Text: "Không xác định", ColorTag: "default", Icon: "question-circle"}

// currentPhaseTable maps the backend's newer currentPhase labels to their
// display descriptors.
var currentPhaseTable = map[string]PhaseDisplay{
	"Chờ đề xuất":     {Text: "Chờ đề xuất", ColorTag: "blue", Icon: "clock-circle"},
	"Chờ duyệt":       {Text: "Chờ duyệt", ColorTag: "gold", Icon: "audit"},
	"Chờ thanh toán":  {Text: "Chờ thanh toán", ColorTag: "orange", Icon: "credit-card"},
	"Đang mua hàng":   {Text: "Đang mua hàng", ColorTag: "processing", Icon: "shopping-cart"},
	"Hoàn thành":      {Text: "Hoàn thành", ColorTag: "green", Icon: "check-circle"},
	"Đã hủy":          {Text: "Đã hủy", ColorTag: "red", Icon: "close-circle"},
	"Hết hạn":         {Text: "Hết hạn", ColorTag: "default", Icon: "field-time"},
}

// legacyOrderTable maps order-level statuses for responses predating the
// currentPhase field.
var legacyOrderTable = map[string]PhaseDisplay{
	OrderStatusDraft:      {Text: "Chờ đề xuất", ColorTag: "blue", Icon: "clock-circle"},
	OrderStatusProposed:   {Text: "Chờ duyệt", ColorTag: "gold", Icon: "audit"},
	OrderStatusPaid:       {Text: "Chờ thanh toán", ColorTag: "orange", Icon: "credit-card"},
	OrderStatusInProgress: {Text: "Đang mua hàng", ColorTag: "processing", Icon: "shopping-cart"},
	OrderStatusCompleted:  {Text: "Hoàn thành", ColorTag: "green", Icon: "check-circle"},
	OrderStatusCancelled:  {Text: "Đã hủy", ColorTag: "red", Icon: "close-circle"},
	OrderStatusExpired:    {Text: "Hết hạn", ColorTag: "default", Icon: "field-time"},
}

// legacyRequestTable maps request-level statuses when no order exists yet.
var legacyRequestTable = map[string]PhaseDisplay{
	RequestStatusOpen:      {Text: "Chờ đề xuất", ColorTag: "blue", Icon: "clock-circle"},
	RequestStatusLocked:    {Text: "Đang xử lý", ColorTag: "processing", Icon: "lock"},
	RequestStatusCompleted: {Text: "Hoàn thành", ColorTag: "green", Icon: "check-circle"},
	RequestStatusCancelled: {Text: "Đã hủy", ColorTag: "red", Icon: "close-circle"},
	RequestStatusExpired:   {Text: "Hết hạn", ColorTag: "default", Icon: "field-time"},
}

// DisplayPhase resolves the single display descriptor for a request.
// The backend's currentPhase field wins when present; otherwise the legacy
// status/orderStatus pair is consulted. Unknown values degrade to
// UnknownPhase rather than failing, so newer backend statuses never break
// older clients.
func DisplayPhase(r *ProxyRequest) PhaseDisplay {
	if r == nil {
		return UnknownPhase
	}

	if r.CurrentPhase != "" {
		if d, ok := currentPhaseTable[r.CurrentPhase]; ok {
			return d
		}
		return UnknownPhase
	}

	if r.HasOrder && r.OrderStatus != "" {
		if d, ok := legacyOrderTable[r.OrderStatus]; ok {
			return d
		}
		return UnknownPhase
	}

	if d, ok := legacyRequestTable[r.Status]; ok {
		return d
	}
	return UnknownPhase
}
