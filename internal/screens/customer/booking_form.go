package customer

import (
	"context"
	"time"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/common/validation"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BookingForm is the modal form that creates a booking against a chosen
// provider and service. Date and time are collected separately and
// combined into one scheduled timestamp on submit.
type BookingForm struct {
	bookings *api.BookingsClient
	locator  Locator
	logger   logger.Logger

	providerID int64
	serviceID  int64

	date        string
	timeOfDay   string
	address     string
	description string
	lat, lng    *float64

	now func() time.Time

	created *api.Booking
	loading bool
	errMsg  string
}

func NewBookingForm(bookings *api.BookingsClient, locator Locator, providerID, serviceID int64, log logger.Logger) *BookingForm {
	return &BookingForm{
		bookings:   bookings,
		locator:    locator,
		logger:     log,
		providerID: providerID,
		serviceID:  serviceID,
		now:        time.Now,
	}
}

func (f *BookingForm) SetDate(date string)        { f.date = date }
func (f *BookingForm) SetTime(timeOfDay string)   { f.timeOfDay = timeOfDay }
func (f *BookingForm) SetAddress(address string)  { f.address = address }
func (f *BookingForm) SetDescription(desc string) { f.description = desc }

func (f *BookingForm) Error() string         { return f.errMsg }
func (f *BookingForm) Loading() bool         { return f.loading }
func (f *BookingForm) Created() *api.Booking { return f.created }

// UseDeviceLocation fills the optional coordinates from the device.
func (f *BookingForm) UseDeviceLocation(ctx context.Context) {
	lat, lng, err := f.locator.Locate(ctx)
	if err != nil {
		f.errMsg = "Couldn't detect location. Enter the address manually."
		return
	}
	f.lat, f.lng = &lat, &lng
}

func (f *BookingForm) SetCoordinates(lat, lng float64) {
	f.lat, f.lng = &lat, &lng
}

// Submit validates the form, combines date and time into one scheduled
// timestamp and posts the booking request.
func (f *BookingForm) Submit(ctx context.Context) {
	if result := validation.Merge(
		validation.Required("date", "Date", f.date),
		validation.Required("time", "Time", f.timeOfDay),
		validation.Required("address", "Address", f.address),
	); !result.Valid {
		f.errMsg = result.First()
		return
	}

	date, err := time.ParseInLocation(dateLayout, f.date, time.Local)
	if err != nil {
		f.errMsg = "Please enter the date as YYYY-MM-DD"
		return
	}
	if result := validation.DateNotPast(date, f.now()); !result.Valid {
		f.errMsg = result.First()
		return
	}

	clock, err := time.ParseInLocation(timeLayout, f.timeOfDay, time.Local)
	if err != nil {
		f.errMsg = "Please enter the time as HH:MM"
		return
	}

	scheduled := time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local)

	f.loading = true
	f.errMsg = ""
	booking, err := f.bookings.Create(ctx, api.BookingRequest{
		ProviderID:        f.providerID,
		ServiceID:         f.serviceID,
		ScheduledDateTime: scheduled,
		Address:           f.address,
		Latitude:          f.lat,
		Longitude:         f.lng,
		Description:       f.description,
	})
	f.loading = false

	if err != nil {
		f.errMsg = errors.UserMessage(err)
		return
	}

	f.created = booking
	f.logger.Info("booking created", map[string]interface{}{
		"bookingId": booking.ID,
		"provider":  f.providerID,
	})
}
