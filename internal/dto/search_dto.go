package dto

type SearchJobsRequest struct {
	Query          string `query:"query"`
	Page           int    `query:"page"`
	DatePosted     string `query:"date_posted"`
	RemoteJobsOnly bool   `query:"remote_jobs_only"`
}
