package provider

import "nearfix-client/internal/api"

// Task labels shown as onboarding prompts on the dashboard.
const (
	TaskBusinessDetails = "Complete your business details"
	TaskProfilePhoto    = "Upload a profile photo"
	TaskIDDocument      = "Upload your ID document"
)

// ProfileTasks derives the outstanding onboarding tasks from a profile
// snapshot. The completion percentage itself is backend-computed; this
// inference only picks the prompts to show and is not authoritative.
func ProfileTasks(p api.Profile) []string {
	var tasks []string

	if p.BusinessName == "" || p.Address == "" || p.City == "" || p.Pincode == "" ||
		p.Latitude == 0 || p.Longitude == 0 {
		tasks = append(tasks, TaskBusinessDetails)
	}
	if p.PhotoURL == "" {
		tasks = append(tasks, TaskProfilePhoto)
	}
	if p.AadharURL == "" {
		tasks = append(tasks, TaskIDDocument)
	}

	return tasks
}
