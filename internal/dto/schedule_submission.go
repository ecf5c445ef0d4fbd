package dto

import (
	"go.uber.org/zap/zapcore"
)

// SubmitScheduleRequest is the body of POST /api/submit-schedule.
type SubmitScheduleRequest struct {
	StudentID     string              `json:"studentId" validate:"required"`
	Availability  []AvailabilityItem  `json:"availability"`
	ClassSchedule []ClassScheduleItem `json:"classSchedule"`
}

// AvailabilityItem fields are pointers so an absent field stays distinguishable from a
// zero value all the way down to storage.
type AvailabilityItem struct {
	Day  *int    `json:"day"`
	Time *string `json:"time"`
	Type *string `json:"type"`
}

// ClassScheduleItem is one class slot.
type ClassScheduleItem struct {
	Day  *int    `json:"day"`
	Time *string `json:"time"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r SubmitScheduleRequest) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("studentId", r.StudentID)
	if err := enc.AddArray("availability", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, item := range r.Availability {
			if err := arr.AppendObject(item); err != nil {
				return err
			}
		}
		return nil
	})); err != nil {
		return err
	}
	return enc.AddArray("classSchedule", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, item := range r.ClassSchedule {
			if err := arr.AppendObject(item); err != nil {
				return err
			}
		}
		return nil
	}))
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (i AvailabilityItem) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	addInt(enc, "day", i.Day)
	addString(enc, "time", i.Time)
	addString(enc, "type", i.Type)
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (i ClassScheduleItem) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	addInt(enc, "day", i.Day)
	addString(enc, "time", i.Time)
	return nil
}

func addInt(enc zapcore.ObjectEncoder, key string, v *int) {
	if v != nil {
		enc.AddInt(key, *v)
	}
}

func addString(enc zapcore.ObjectEncoder, key string, v *string) {
	if v != nil {
		enc.AddString(key, *v)
	}
}
