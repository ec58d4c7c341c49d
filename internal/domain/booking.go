package domain

// BookingStatus representa o estado de uma reserva no marketplace
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRefunded  BookingStatus = "refunded"
)

// RevenueStatuses são os estados que contam como receita realizada
var RevenueStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusCompleted}

var bookingStatuses = map[BookingStatus]bool{
	BookingStatusPending:   true,
	BookingStatusConfirmed: true,
	BookingStatusCompleted: true,
	BookingStatusCancelled: true,
	BookingStatusRefunded:  true,
}

func (s BookingStatus) IsValid() bool {
	return bookingStatuses[s]
}

// StatusStrings converte a lista de status para o formato aceito pelos drivers
func StatusStrings(statuses []BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
