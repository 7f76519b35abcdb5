package mongodb

import (
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents are decoded loosely: records written by older clients carry
// numbers as doubles or strings and dates as strings or timestamps.

type splitDocument struct {
	WorkerID        string        `bson:"workerId"`
	SplitPercentage bson.RawValue `bson:"splitPercentage"`
}

type bookingDocument struct {
	ID                 bson.RawValue    `bson:"_id"`
	Status             string           `bson:"status"`
	Amount             bson.RawValue    `bson:"amount"`
	AppointmentDate    bson.RawValue    `bson:"appointmentDate"`
	AppointmentTime    string           `bson:"appointmentTime"`
	CustomerName       string           `bson:"customerName"`
	Email              string           `bson:"email"`
	Phone              string           `bson:"phone"`
	ServiceType        string           `bson:"serviceType"`
	Address            string           `bson:"address"`
	Notes              *string          `bson:"notes"`
	AssignedWorkersPay *[]splitDocument `bson:"assignedWorkersPay"`
	AssignedWorkerIDs  []string         `bson:"assignedWorkerIds"`
	Version            bson.RawValue    `bson:"version"`
	CreatedAt          bson.RawValue    `bson:"createdAt"`
}

func (d bookingDocument) toBooking() booking.Booking {
	id := rawID(d.ID)
	b := booking.Booking{
		ID:                id,
		Status:            booking.ParseStatus(d.Status),
		Amount:            rawDecimal(d.Amount),
		AppointmentDate:   booking.CanonicalDate(id, rawDateValue(d.AppointmentDate)),
		AppointmentTime:   d.AppointmentTime,
		CustomerName:      d.CustomerName,
		Email:             d.Email,
		Phone:             d.Phone,
		ServiceType:       d.ServiceType,
		Address:           d.Address,
		Notes:             d.Notes,
		AssignedWorkerIDs: d.AssignedWorkerIDs,
		Version:           int64(rawInt(d.Version)),
		CreatedAt:         rawTime(d.CreatedAt),
	}
	if d.AssignedWorkersPay != nil {
		b.AssignedWorkersPay = make([]booking.PaySplit, 0, len(*d.AssignedWorkersPay))
		for _, s := range *d.AssignedWorkersPay {
			b.AssignedWorkersPay = append(b.AssignedWorkersPay, booking.PaySplit{
				WorkerID:        s.WorkerID,
				SplitPercentage: rawInt(s.SplitPercentage),
			})
		}
	}
	return b
}

// newBookingDocument is the insert shape. Amounts are stored as Decimal128.
func newBookingDocument(b booking.Booking) (bson.D, error) {
	amount, err := primitive.ParseDecimal128(b.Amount.String())
	if err != nil {
		return nil, err
	}

	doc := bson.D{
		{Key: "_id", Value: b.ID},
		{Key: "status", Value: string(b.Status)},
		{Key: "amount", Value: amount},
		{Key: "appointmentDate", Value: b.AppointmentDate},
		{Key: "appointmentTime", Value: b.AppointmentTime},
		{Key: "customerName", Value: b.CustomerName},
		{Key: "email", Value: b.Email},
		{Key: "phone", Value: b.Phone},
		{Key: "serviceType", Value: b.ServiceType},
		{Key: "address", Value: b.Address},
		{Key: "notes", Value: b.Notes},
		{Key: "version", Value: b.Version},
		{Key: "createdAt", Value: b.CreatedAt},
	}
	if b.AssignedWorkersPay != nil {
		doc = append(doc, bson.E{Key: "assignedWorkersPay", Value: splitValues(b.AssignedWorkersPay)})
	}
	if b.AssignedWorkerIDs != nil {
		doc = append(doc, bson.E{Key: "assignedWorkerIds", Value: b.AssignedWorkerIDs})
	}
	return doc, nil
}

func splitValues(splits []booking.PaySplit) bson.A {
	values := bson.A{}
	for _, s := range splits {
		values = append(values, bson.D{
			{Key: "workerId", Value: s.WorkerID},
			{Key: "splitPercentage", Value: s.SplitPercentage},
		})
	}
	return values
}

// patchFields is the $set part of a Save.
func patchFields(patch booking.Patch) bson.D {
	set := bson.D{}
	if patch.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*patch.Status)})
	}
	if patch.AssignedWorkerIDs != nil {
		ids := append([]string{}, (*patch.AssignedWorkerIDs)...)
		set = append(set, bson.E{Key: "assignedWorkerIds", Value: ids})
	}
	if patch.AssignedWorkersPay != nil {
		set = append(set, bson.E{Key: "assignedWorkersPay", Value: splitValues(*patch.AssignedWorkersPay)})
	}
	return set
}

type workerDocument struct {
	ID            bson.RawValue `bson:"_id"`
	Name          string        `bson:"name"`
	ContactNumber *string       `bson:"contactNumber"`
	CreatedAt     bson.RawValue `bson:"createdAt"`
}

func (d workerDocument) toWorker() worker.Worker {
	return worker.Worker{
		ID:            rawID(d.ID),
		Name:          d.Name,
		ContactNumber: d.ContactNumber,
		CreatedAt:     rawTime(d.CreatedAt),
	}
}

func newWorkerDocument(w worker.Worker) bson.D {
	return bson.D{
		{Key: "_id", Value: w.ID},
		{Key: "name", Value: w.Name},
		{Key: "contactNumber", Value: w.ContactNumber},
		{Key: "createdAt", Value: w.CreatedAt},
	}
}

// ========== RAW VALUE HELPERS ==========

func rawID(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return ""
}

// idFilter matches both string ids and ObjectIDs written by other clients.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

// rawDecimal reads a stored amount. Absent or unreadable amounts are zero.
func rawDecimal(v bson.RawValue) decimal.Decimal {
	if d, ok := v.Decimal128OK(); ok {
		if parsed, err := decimal.NewFromString(d.String()); err == nil {
			return parsed
		}
		return decimal.Zero
	}
	if f, ok := v.DoubleOK(); ok {
		return decimal.NewFromFloat(f)
	}
	if i, ok := v.Int32OK(); ok {
		return decimal.NewFromInt32(i)
	}
	if i, ok := v.Int64OK(); ok {
		return decimal.NewFromInt(i)
	}
	if s, ok := v.StringValueOK(); ok {
		if parsed, err := decimal.NewFromString(s); err == nil {
			return parsed
		}
	}
	return decimal.Zero
}

func rawInt(v bson.RawValue) int {
	if i, ok := v.Int32OK(); ok {
		return int(i)
	}
	if i, ok := v.Int64OK(); ok {
		return int(i)
	}
	if f, ok := v.DoubleOK(); ok {
		return int(f)
	}
	return 0
}

// rawDateValue hands booking.CanonicalDate a time.Time or string. Anything
// else is passed through so it gets reported as unparseable.
func rawDateValue(v bson.RawValue) any {
	if ms, ok := v.DateTimeOK(); ok {
		return time.UnixMilli(ms).UTC()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	if v.IsZero() || v.Type == bsontype.Null {
		return nil
	}
	return v.String()
}

func rawTime(v bson.RawValue) time.Time {
	if ms, ok := v.DateTimeOK(); ok {
		return time.UnixMilli(ms).UTC()
	}
	if s, ok := v.StringValueOK(); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
