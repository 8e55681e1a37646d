package provider

import (
	"context"
	"io"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/logger"
)

type WizardStep int

const (
	StepBusinessDetails WizardStep = 1
	StepPhoto           WizardStep = 2
	StepDocument        WizardStep = 3
)

type selectedFile struct {
	name   string
	reader io.Reader
}

// Wizard walks a provider through onboarding in three fixed steps. Each
// step submits independently before advancing, so partial progress
// survives an exit; "skip for now" leaves the wizard early on steps 1-2.
type Wizard struct {
	provider *api.ProviderClient
	logger   logger.Logger

	step    WizardStep
	profile api.Profile
	form    api.ProfileUpdate

	photo    *selectedFile
	document *selectedFile

	done    bool
	loading bool
	errMsg  string
}

func NewWizard(provider *api.ProviderClient, log logger.Logger) *Wizard {
	return &Wizard{
		provider: provider,
		logger:   log,
		step:     StepBusinessDetails,
	}
}

func (w *Wizard) Step() WizardStep        { return w.step }
func (w *Wizard) Done() bool              { return w.done }
func (w *Wizard) Error() string           { return w.errMsg }
func (w *Wizard) Loading() bool           { return w.loading }
func (w *Wizard) Form() api.ProfileUpdate { return w.form }

// Load pulls the existing profile so a returning provider resumes with
// their saved values and pre-existing uploads.
func (w *Wizard) Load(ctx context.Context) {
	w.loading = true
	profile, err := w.provider.Profile(ctx)
	w.loading = false

	if err != nil {
		w.errMsg = errors.UserMessage(err)
		return
	}

	w.profile = *profile
	w.form = api.ProfileUpdate{
		BusinessName:    profile.BusinessName,
		Address:         profile.Address,
		City:            profile.City,
		Pincode:         profile.Pincode,
		Latitude:        profile.Latitude,
		Longitude:       profile.Longitude,
		Bio:             profile.Bio,
		ExperienceYears: profile.ExperienceYears,
	}
}

func (w *Wizard) SetBusinessName(v string) { w.form.BusinessName = v }
func (w *Wizard) SetAddress(v string)      { w.form.Address = v }
func (w *Wizard) SetCity(v string)         { w.form.City = v }
func (w *Wizard) SetPincode(v string)      { w.form.Pincode = v }
func (w *Wizard) SetBio(v string)          { w.form.Bio = v }
func (w *Wizard) SetExperience(years int)  { w.form.ExperienceYears = years }

func (w *Wizard) SetCoordinates(lat, lng float64) {
	w.form.Latitude = lat
	w.form.Longitude = lng
}

func (w *Wizard) SelectPhoto(name string, reader io.Reader) {
	w.photo = &selectedFile{name: name, reader: reader}
}

func (w *Wizard) SelectDocument(name string, reader io.Reader) {
	w.document = &selectedFile{name: name, reader: reader}
}

// CanContinue reports whether the current step's requirements are met.
func (w *Wizard) CanContinue() bool {
	switch w.step {
	case StepBusinessDetails:
		return w.form.BusinessName != "" &&
			w.form.Address != "" &&
			w.form.City != "" &&
			w.form.Pincode != "" &&
			w.form.Latitude != 0 &&
			w.form.Longitude != 0
	case StepPhoto:
		return w.photo != nil || w.profile.PhotoURL != ""
	case StepDocument:
		return w.document != nil || w.profile.AadharURL != ""
	}
	return false
}

// CanSkip reports whether "skip for now" is offered on the current step.
func (w *Wizard) CanSkip() bool {
	return w.step == StepBusinessDetails || w.step == StepPhoto
}

// Skip exits the wizard early without submitting the current step.
func (w *Wizard) Skip() {
	if w.CanSkip() {
		w.done = true
	}
}

// Continue submits the current step and advances on success. The final
// step completes the wizard.
func (w *Wizard) Continue(ctx context.Context) {
	if !w.CanContinue() {
		w.errMsg = "Please fill in the required fields first"
		return
	}

	w.loading = true
	w.errMsg = ""
	var err error

	switch w.step {
	case StepBusinessDetails:
		var profile *api.Profile
		profile, err = w.provider.UpdateProfile(ctx, w.form)
		if err == nil {
			w.profile = *profile
			w.step = StepPhoto
		}
	case StepPhoto:
		if w.photo != nil {
			var profile *api.Profile
			profile, err = w.provider.UploadPhoto(ctx, w.photo.name, w.photo.reader)
			if err == nil {
				w.profile = *profile
				w.photo = nil
			}
		}
		if err == nil {
			w.step = StepDocument
		}
	case StepDocument:
		if w.document != nil {
			var profile *api.Profile
			profile, err = w.provider.UploadDocument(ctx, w.document.name, w.document.reader)
			if err == nil {
				w.profile = *profile
				w.document = nil
			}
		}
		if err == nil {
			w.done = true
			w.logger.Info("onboarding completed", map[string]interface{}{
				"completion": w.profile.ProfileCompletionPercentage,
			})
		}
	}

	w.loading = false
	if err != nil {
		w.errMsg = errors.UserMessage(err)
	}
}
