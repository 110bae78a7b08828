package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time measures one named operation and logs its duration (and error, if the
// caller's named error is set) when the returned closure runs. Typical use:
//
//	func (o *OSRMMatrixProvider) BuildMatrix(ctx ...) (_ domain.TravelMatrix, err error) {
//	    defer obs.Time(ctx, "osrm.BuildMatrix")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)
	if reqID == "" {
		reqID = "-"
	}

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("op=%s req_id=%s dur=%dms err=%v", name, reqID, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("op=%s req_id=%s dur=%dms", name, reqID, dur.Milliseconds())
	}
}
