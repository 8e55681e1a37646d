// cmd/nearfix/app.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/config"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/common/poll"
	"nearfix-client/internal/payment"
	"nearfix-client/internal/screens/admin"
	"nearfix-client/internal/screens/auth"
	"nearfix-client/internal/screens/customer"
	"nearfix-client/internal/screens/provider"
	"nearfix-client/internal/session"
)

// app is the line-mode front end. It owns no business rules: every menu
// drives a screen controller and renders whatever state comes back.
type app struct {
	cfg     *config.Config
	client  *api.Client
	sess    *session.Store
	logger  logger.Logger
	scanner *bufio.Scanner
	out     io.Writer
}

func newApp(cfg *config.Config, client *api.Client, sess *session.Store, log logger.Logger, in io.Reader, out io.Writer) *app {
	return &app{
		cfg:     cfg,
		client:  client,
		sess:    sess,
		logger:  log,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (a *app) run(ctx context.Context) {
	a.printf("%s %s\n", a.cfg.App.Name, a.cfg.App.Version)

	for ctx.Err() == nil {
		if !a.sess.IsAuthenticated() {
			if !a.runAuth(ctx) {
				return
			}
			continue
		}

		var again bool
		switch a.sess.Role() {
		case session.RoleAdmin:
			again = a.runAdmin(ctx)
		case session.RoleProvider:
			again = a.runProvider(ctx)
		default:
			again = a.runCustomer(ctx)
		}
		if !again {
			return
		}
	}
}

// --- Auth flow ---

// runAuth walks login → OTP → (role) until the controller reaches done.
// Returns false when the user quits instead of signing in.
func (a *app) runAuth(ctx context.Context) bool {
	cooldown := poll.NewCountdown(a.cfg.Poll.ResendCooldown)
	defer cooldown.Stop()
	ctrl := auth.NewController(a.client.Auth, a.sess, cooldown, a.logger)

	for ctx.Err() == nil && ctrl.Step() != auth.StepDone {
		if msg := ctrl.Error(); msg != "" {
			a.printf("! %s\n", msg)
		}

		switch ctrl.Step() {
		case auth.StepLogin:
			phone, ok := a.prompt("Phone number (q to quit)")
			if !ok || phone == "q" {
				return false
			}
			ctrl.SubmitPhone(ctx, phone)

		case auth.StepOTP:
			a.printf("OTP sent to %s. Enter code (r to resend, q to quit)\n", ctrl.Phone())
			code, ok := a.prompt("OTP")
			if !ok || code == "q" {
				return false
			}
			if code == "r" {
				if ctrl.CanResend() {
					ctrl.Resend(ctx)
				} else {
					a.printf("Resend available in %ds\n", ctrl.ResendRemaining())
				}
				continue
			}
			for i, r := range code {
				ctrl.EnterDigit(ctx, i, r)
			}

		case auth.StepRole:
			choice, ok := a.prompt("I need services [1] / I provide services [2]")
			if !ok {
				return false
			}
			switch choice {
			case "1":
				ctrl.ChooseRole(ctx, session.RoleCustomer)
			case "2":
				ctrl.ChooseRole(ctx, session.RoleProvider)
			}
		}
	}

	return ctrl.Step() == auth.StepDone
}

// --- Customer flow ---

func (a *app) runCustomer(ctx context.Context) bool {
	for ctx.Err() == nil {
		a.printf("\nSigned in as %s\n", a.sess.DisplayPhone())
		choice, ok := a.prompt("[1] Find services  [2] My bookings  [3] Logout  [q] Quit")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			a.customerSearch(ctx)
		case "2":
			a.customerBookings(ctx)
		case "3":
			if err := a.sess.Logout(); err != nil {
				a.printf("! %s\n", err)
			}
			return true
		case "q":
			return false
		}
	}
	return false
}

func (a *app) customerSearch(ctx context.Context) {
	locator := customer.FixedLocator{Lat: customer.DefaultLocation.Lat, Lng: customer.DefaultLocation.Lng}
	search := customer.NewSearchController(a.client.Services, a.client.Search, a.client.Reviews, locator, a.logger)
	search.Load(ctx)
	if msg := search.Error(); msg != "" {
		a.printf("! %s\n", msg)
		return
	}

	a.printf("Services:\n")
	for _, svc := range search.Catalog() {
		a.printf("  %d. %s\n", svc.ID, svc.Name)
	}
	id, ok := a.promptInt("Service id")
	if !ok {
		return
	}
	search.SelectService(id)

	if radius, ok := a.promptInt("Radius km (5-50)"); ok {
		search.SetRadius(int(radius))
	}
	if price, ok := a.promptFloat("Max price (enter to skip)"); ok {
		search.SetMaxPrice(price)
	}
	if rating, ok := a.promptFloat("Min rating (enter to skip)"); ok {
		search.SetMinRating(rating)
	}
	if sort, ok := a.prompt("Sort by distance/rating/price (enter for distance)"); ok && sort != "" {
		search.SetSortBy(api.SortKey(sort))
	}

	search.Submit(ctx)
	if msg := search.Error(); msg != "" {
		a.printf("! %s\n", msg)
		return
	}

	for _, p := range search.Results() {
		a.printf("  %d. %s (%s) ★%.1f  %.1fkm  from ₹%.0f\n",
			p.ID, p.BusinessName, p.City, p.Rating, p.DistanceKm, p.StartingPrice)
	}
	if len(search.Results()) == 0 {
		a.printf("No providers found.\n")
		return
	}

	providerID, ok := a.promptInt("Provider id to book (0 to go back)")
	if !ok || providerID == 0 {
		return
	}
	view, err := search.ProviderDetail(ctx, providerID)
	if err != nil {
		a.printf("! %s\n", search.Error())
		return
	}
	detail := view.Detail
	a.printf("%s — %s, %s\n", detail.BusinessName, detail.Address, detail.City)
	if view.Stats != nil {
		a.printf("★%.1f from %d reviews\n", view.Stats.AverageRating, view.Stats.TotalReviews)
	}
	for i, review := range view.Reviews {
		if i == 3 {
			break
		}
		a.printf("  ★%d %q — %s\n", review.Rating, review.Comment, review.CustomerName)
	}

	a.customerBook(ctx, locator, providerID, id)
}

func (a *app) customerBook(ctx context.Context, locator customer.Locator, providerID, serviceID int64) {
	form := customer.NewBookingForm(a.client.Bookings, locator, providerID, serviceID, a.logger)

	if date, ok := a.prompt("Date (YYYY-MM-DD)"); ok {
		form.SetDate(date)
	}
	if at, ok := a.prompt("Time (HH:MM)"); ok {
		form.SetTime(at)
	}
	if addr, ok := a.prompt("Address"); ok {
		form.SetAddress(addr)
	}
	if desc, ok := a.prompt("Describe the problem (optional)"); ok {
		form.SetDescription(desc)
	}
	form.UseDeviceLocation(ctx)

	form.Submit(ctx)
	if msg := form.Error(); msg != "" {
		a.printf("! %s\n", msg)
		return
	}
	if booking := form.Created(); booking != nil {
		a.printf("Booking #%d created, status %s\n", booking.ID, booking.Status)
	}
}

func (a *app) customerBookings(ctx context.Context) {
	ctrl := customer.NewBookingsController(a.client, a.cfg.Poll.Refresh(), a.logger)
	ctrl.Mount()
	defer ctrl.Unmount()

	for ctx.Err() == nil {
		for _, item := range ctrl.Items() {
			flags := ""
			if item.CanPay {
				flags += " [pay]"
			}
			if item.CanReview {
				flags += " [review]"
			}
			a.printf("  #%d %s %s ₹%.0f%s\n",
				item.Booking.ID, item.Booking.ServiceName, item.Booking.Status, item.Booking.QuotedPrice, flags)
		}
		if msg := ctrl.Error(); msg != "" {
			a.printf("! %s\n", msg)
		}

		choice, ok := a.prompt("[f]ilter [p]ay [r]eview [c]ancel [enter] refresh [b]ack")
		if !ok || choice == "b" {
			return
		}
		switch choice {
		case "f":
			if filter, ok := a.prompt("Filter (all/PENDING/ACCEPTED/COMPLETED/CANCELLED)"); ok {
				ctrl.SetFilter(filter)
			}
		case "p":
			if id, ok := a.promptInt("Booking id"); ok {
				a.payBooking(ctx, ctrl, id)
			}
		case "r":
			if id, ok := a.promptInt("Booking id"); ok {
				rating, _ := a.promptInt("Rating (1-5)")
				comment, _ := a.prompt("Comment (optional)")
				ctrl.SubmitReview(ctx, id, int(rating), comment)
			}
		case "c":
			if id, ok := a.promptInt("Booking id"); ok {
				reason, _ := a.prompt("Reason")
				ctrl.Cancel(ctx, id, reason)
			}
		}
	}
}

func (a *app) payBooking(ctx context.Context, ctrl *customer.BookingsController, bookingID int64) {
	gateway := &terminalGateway{
		app:         a,
		displayName: a.cfg.Checkout.DisplayName,
	}
	bridge := payment.NewBridge(a.client.Payments, gateway, a.cfg.Checkout.KeyID, a.logger)

	if err := bridge.Pay(ctx, bookingID); err != nil {
		a.printf("! %s\n", bridge.Error())
		return
	}

	switch bridge.State() {
	case payment.StateDone:
		ctrl.MarkPaid(bookingID)
		a.printf("Payment successful.\n")
	case payment.StateIdle:
		a.printf("Checkout dismissed.\n")
	}
}

// --- Provider flow ---

func (a *app) runProvider(ctx context.Context) bool {
	dash := provider.NewDashboard(a.client.Provider, a.client.Bookings, a.cfg.Poll.Refresh(), a.logger)
	dash.Mount()
	defer dash.Unmount()

	for ctx.Err() == nil {
		a.printf("\nSigned in as %s\n", a.sess.DisplayPhone())
		stats := dash.Stats()
		a.printf("Bookings %d (pending %d, completed %d)  Earnings ₹%.0f\n",
			stats.TotalBookings, stats.PendingBookings, stats.CompletedBookings, stats.Earnings)
		if profile := dash.Profile(); profile != nil {
			a.printf("Status: %s  Profile %d%%\n", profile.AvailabilityStatus, profile.ProfileCompletionPercentage)
		}
		for _, task := range dash.Tasks() {
			a.printf("  todo: %s\n", task)
		}
		if msg := dash.Error(); msg != "" {
			a.printf("! %s\n", msg)
		}

		choice, ok := a.prompt("[1] Bookings  [2] Services  [3] Onboarding  [4] Toggle availability  [5] Logout  [q] Quit")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			a.providerBookings(ctx)
		case "2":
			a.providerServices(ctx)
		case "3":
			a.providerWizard(ctx)
		case "4":
			dash.ToggleAvailability(ctx)
		case "5":
			if err := a.sess.Logout(); err != nil {
				a.printf("! %s\n", err)
			}
			return true
		case "q":
			return false
		}
	}
	return false
}

func (a *app) providerBookings(ctx context.Context) {
	ctrl := provider.NewBookingsController(a.client.Bookings, a.cfg.Poll.Refresh(), a.logger)
	ctrl.Mount()
	defer ctrl.Unmount()

	for ctx.Err() == nil {
		for _, b := range ctrl.Items() {
			a.printf("  #%d %s %s ₹%.0f — %s\n", b.ID, b.ServiceName, b.Status, b.QuotedPrice, b.CustomerName)
		}
		if msg := ctrl.Error(); msg != "" {
			a.printf("! %s\n", msg)
		}

		choice, ok := a.prompt("[a]ccept [r]eject [c]omplete [f]ilter [enter] refresh [b]ack")
		if !ok || choice == "b" {
			return
		}
		switch choice {
		case "a":
			if id, ok := a.promptInt("Booking id"); ok {
				if confirm, _ := a.prompt("Accept this booking? (y/n)"); confirm == "y" {
					ctrl.Accept(ctx, id)
				}
			}
		case "r":
			if id, ok := a.promptInt("Booking id"); ok {
				reason, _ := a.prompt("Reason")
				ctrl.Reject(ctx, id, reason)
			}
		case "c":
			if id, ok := a.promptInt("Booking id"); ok {
				prefill := ctrl.PrefillFinalPrice(id)
				price, okPrice := a.promptFloat(fmt.Sprintf("Final price (quoted ₹%.0f)", prefill))
				if !okPrice {
					price = prefill
				}
				ctrl.Complete(ctx, id, price)
			}
		case "f":
			if filter, ok := a.prompt("Filter (all/PENDING/ACCEPTED/COMPLETED)"); ok {
				ctrl.SetFilter(filter)
			}
		}
	}
}

func (a *app) providerServices(ctx context.Context) {
	ctrl := provider.NewServicesController(a.client.Provider, a.client.Services, a.logger)
	ctrl.Load(ctx)

	for ctx.Err() == nil {
		for _, svc := range ctrl.Mine() {
			a.printf("  %d. %s ₹%.0f (%d yrs)\n", svc.ID, svc.ServiceName, svc.BasePrice, svc.ExperienceYears)
		}
		if msg := ctrl.Error(); msg != "" {
			a.printf("! %s\n", msg)
		}

		choice, ok := a.prompt("[a]dd [u]pdate [d]elete [b]ack")
		if !ok || choice == "b" {
			return
		}
		switch choice {
		case "a":
			addable := ctrl.Addable()
			for _, svc := range addable {
				a.printf("  %d. %s\n", svc.ID, svc.Name)
			}
			if len(addable) == 0 {
				a.printf("All catalog services already offered.\n")
				continue
			}
			req, ok := a.promptServiceRequest()
			if !ok {
				continue
			}
			ctrl.Add(ctx, req)
		case "u":
			if id, ok := a.promptInt("Offering id"); ok {
				req, okReq := a.promptServiceRequest()
				if okReq {
					ctrl.Update(ctx, id, req)
				}
			}
		case "d":
			if id, ok := a.promptInt("Offering id"); ok {
				ctrl.Remove(ctx, id)
			}
		}
	}
}

func (a *app) promptServiceRequest() (api.ProviderServiceRequest, bool) {
	var req api.ProviderServiceRequest
	id, ok := a.promptInt("Service id")
	if !ok {
		return req, false
	}
	req.ServiceID = id
	req.BasePrice, _ = a.promptFloat("Base price")
	if years, ok := a.promptInt("Experience years"); ok {
		req.ExperienceYears = int(years)
	}
	req.Description, _ = a.prompt("Description (optional)")
	req.Available = true
	return req, true
}

func (a *app) providerWizard(ctx context.Context) {
	w := provider.NewWizard(a.client.Provider, a.logger)
	w.Load(ctx)

	for ctx.Err() == nil && !w.Done() {
		if msg := w.Error(); msg != "" {
			a.printf("! %s\n", msg)
		}

		switch w.Step() {
		case provider.StepBusinessDetails:
			a.printf("Step 1/3 — business details\n")
			form := w.Form()
			if v, ok := a.promptDefault("Business name", form.BusinessName); ok {
				w.SetBusinessName(v)
			}
			if v, ok := a.promptDefault("Address", form.Address); ok {
				w.SetAddress(v)
			}
			if v, ok := a.promptDefault("City", form.City); ok {
				w.SetCity(v)
			}
			if v, ok := a.promptDefault("Pincode", form.Pincode); ok {
				w.SetPincode(v)
			}
			lat, _ := a.promptFloat("Latitude")
			lng, _ := a.promptFloat("Longitude")
			if lat != 0 && lng != 0 {
				w.SetCoordinates(lat, lng)
			}
		case provider.StepPhoto:
			a.printf("Step 2/3 — profile photo\n")
			if path, ok := a.prompt("Photo file path (enter to keep current)"); ok && path != "" {
				file, err := os.Open(path)
				if err != nil {
					a.printf("! %s\n", err)
					continue
				}
				w.SelectPhoto(file.Name(), file)
			}
		case provider.StepDocument:
			a.printf("Step 3/3 — ID document\n")
			if path, ok := a.prompt("Document file path (enter to keep current)"); ok && path != "" {
				file, err := os.Open(path)
				if err != nil {
					a.printf("! %s\n", err)
					continue
				}
				w.SelectDocument(file.Name(), file)
			}
		}

		action, ok := a.prompt("[c]ontinue [s]kip [b]ack")
		if !ok || action == "b" {
			return
		}
		switch action {
		case "c":
			w.Continue(ctx)
		case "s":
			if w.CanSkip() {
				w.Skip()
			}
		}
	}

	if w.Done() {
		a.printf("Onboarding saved.\n")
	}
}

// --- Admin flow ---

func (a *app) runAdmin(ctx context.Context) bool {
	console := admin.NewConsole(a.client.Admin, a.logger)
	console.Activate(ctx, admin.TabStats)

	for ctx.Err() == nil {
		a.renderAdmin(console)

		choice, ok := a.prompt("[1] Stats  [2] Verifications  [3] Users  [n]ext [p]rev  [v]erify [r]eject  [4] Logout  [q] Quit")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			console.Activate(ctx, admin.TabStats)
		case "2":
			console.Activate(ctx, admin.TabVerifications)
		case "3":
			console.Activate(ctx, admin.TabUsers)
		case "n":
			console.NextPage(ctx)
		case "p":
			console.PrevPage(ctx)
		case "v":
			if id, ok := a.promptInt("Provider id"); ok {
				console.Verify(ctx, id)
			}
		case "r":
			if id, ok := a.promptInt("Provider id"); ok {
				reason, _ := a.prompt("Reason")
				console.Reject(ctx, id, reason)
			}
		case "4":
			if err := a.sess.Logout(); err != nil {
				a.printf("! %s\n", err)
			}
			return true
		case "q":
			return false
		}
	}
	return false
}

func (a *app) renderAdmin(console *admin.Console) {
	if msg := console.Error(); msg != "" {
		a.printf("! %s\n", msg)
	}

	switch console.Tab() {
	case admin.TabStats:
		if stats := console.Stats(); stats != nil {
			a.printf("\nUsers %d (%+.1f%%)  Providers %d  Bookings %d (%+.1f%%)  Revenue ₹%.0f (%+.1f%%)\n",
				stats.TotalUsers, stats.UserGrowthPct,
				stats.TotalProviders,
				stats.TotalBookings, stats.BookingGrowthPct,
				stats.TotalRevenue, stats.RevenueGrowthPct)
			a.printf("Pending verifications: %d\n", stats.PendingProviders)
			for _, item := range stats.RecentActivity {
				a.printf("  %s %s\n", item.Type, item.Message)
			}
		}
	case admin.TabVerifications:
		page, of := console.PendingPage()
		a.printf("\nPending verifications (page %d/%d)\n", page+1, of)
		for _, p := range console.Pending() {
			a.printf("  %d. %s (%s) %s\n", p.ID, p.BusinessName, p.City, p.Phone)
		}
	case admin.TabUsers:
		page, of := console.UsersPage()
		a.printf("\nUsers (page %d/%d)\n", page+1, of)
		for _, u := range console.Users() {
			a.printf("  %d. %s %s\n", u.ID, u.Phone, u.Role)
		}
	}
}

// --- Input helpers ---

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// prompt reads one trimmed line; false means stdin closed.
func (a *app) prompt(label string) (string, bool) {
	a.printf("%s > ", label)
	if !a.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.scanner.Text()), true
}

// promptDefault keeps the current value on an empty line.
func (a *app) promptDefault(label, current string) (string, bool) {
	suffix := ""
	if current != "" {
		suffix = fmt.Sprintf(" [%s]", current)
	}
	value, ok := a.prompt(label + suffix)
	if !ok {
		return "", false
	}
	if value == "" {
		return current, true
	}
	return value, true
}

func (a *app) promptInt(label string) (int64, bool) {
	value, ok := a.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (a *app) promptFloat(label string) (float64, bool) {
	value, ok := a.prompt(label)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
