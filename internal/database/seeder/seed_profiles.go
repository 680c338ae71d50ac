package seeder

import (
	"context"
	"fmt"

	"agri-match/internal/database"
)

type ProfilesSeeder struct{}

func (ProfilesSeeder) Table() string { return "profiles" }

type demoProfile struct {
	Key             string
	Role            string
	FullName        string
	PreferredRegion *string
	Specialization  *string
	InstitutionType *string
	Qualification   *string
	IsVerified      bool
}

func strp(s string) *string { return &s }

func demoProfiles() []demoProfile {
	return []demoProfile{
		{Key: "farm:asante-cocoa", Role: "farm", FullName: "Asante Cocoa Cooperative", IsVerified: true},
		{Key: "farm:volta-poultry", Role: "farm", FullName: "Volta Poultry Ltd", IsVerified: true},
		{Key: "admin:ops", Role: "admin", FullName: "Platform Ops", IsVerified: true},
		{
			Key: "candidate:ama", Role: "graduate", FullName: "Ama Owusu",
			PreferredRegion: strp("Ashanti"), Specialization: strp("crop"),
			InstitutionType: strp("university"), Qualification: strp("BSc Agriculture, KNUST"),
			IsVerified: true,
		},
		{
			Key: "candidate:kwame", Role: "student", FullName: "Kwame Agyei",
			PreferredRegion: strp("Volta"), Specialization: strp("livestock"),
			InstitutionType: strp("training_college"), Qualification: strp("Diploma, Kwadaso Agric College"),
		},
		{
			Key: "candidate:efua", Role: "graduate", FullName: "Efua Mensah",
			PreferredRegion: strp("Northern"), Specialization: strp("agribusiness"),
			IsVerified: true,
		},
	}
}

func (ProfilesSeeder) Run(ctx context.Context, q database.Querier) error {
	for _, p := range demoProfiles() {
		if _, err := q.Exec(
			ctx,
			`INSERT INTO profiles (id, role, full_name, preferred_region, specialization, institution_type, qualification, is_verified)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO NOTHING`,
			DemoID(p.Key).String(),
			p.Role,
			p.FullName,
			p.PreferredRegion,
			p.Specialization,
			p.InstitutionType,
			p.Qualification,
			p.IsVerified,
		); err != nil {
			return fmt.Errorf("insert profile %s: %w", p.Key, err)
		}
	}
	return nil
}
