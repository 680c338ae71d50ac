package seeder

import (
	"context"
	"fmt"
	"time"

	"agri-match/internal/database"
)

type JobPostingsSeeder struct{}

func (JobPostingsSeeder) Table() string { return "job_postings" }

type demoJob struct {
	Key                     string
	OwnerKey                string
	Title                   string
	Location                string
	JobType                 string
	RequiredSpecialization  *string
	RequiredInstitutionType *string
	Status                  string
	Age                     time.Duration
}

func demoJobs() []demoJob {
	return []demoJob{
		{
			Key: "job:cocoa-supervisor", OwnerKey: "farm:asante-cocoa", Title: "Cocoa farm supervisor",
			Location: "Ashanti", JobType: "farm_manager",
			RequiredSpecialization: strp("crop"), RequiredInstitutionType: strp("any"),
			Status: "active", Age: 72 * time.Hour,
		},
		{
			Key: "job:cocoa-nss", OwnerKey: "farm:asante-cocoa", Title: "NSS agronomy placement",
			Location: "Ashanti", JobType: "nss",
			RequiredInstitutionType: strp("university"),
			Status: "active", Age: 24 * time.Hour,
		},
		{
			Key: "job:poultry-hand", OwnerKey: "farm:volta-poultry", Title: "Poultry farm hand",
			Location: "Volta", JobType: "farm_hand",
			RequiredSpecialization: strp("livestock"),
			Status: "active", Age: 48 * time.Hour,
		},
		{
			Key: "job:poultry-survey", OwnerKey: "farm:volta-poultry", Title: "Market survey data collector",
			Location: "Volta", JobType: "data_collector",
			RequiredSpecialization: strp("agribusiness"),
			Status: "draft", Age: 2 * time.Hour,
		},
	}
}

func (JobPostingsSeeder) Run(ctx context.Context, q database.Querier) error {
	now := time.Now().UTC()
	for _, j := range demoJobs() {
		if _, err := q.Exec(
			ctx,
			`INSERT INTO job_postings (id, owner_id, title, location, job_type, required_specialization, required_institution_type, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO NOTHING`,
			DemoID(j.Key).String(),
			DemoID(j.OwnerKey).String(),
			j.Title,
			j.Location,
			j.JobType,
			j.RequiredSpecialization,
			j.RequiredInstitutionType,
			j.Status,
			now.Add(-j.Age),
		); err != nil {
			return fmt.Errorf("insert job %s: %w", j.Key, err)
		}
	}
	return nil
}
