package ledger

import "time"

func (l *TicketLedger) SetCodeGenerator(gen func() (string, error)) {
	l.newCode = gen
}

func (l *TicketLedger) SetClock(now func() time.Time) {
	l.now = now
}
