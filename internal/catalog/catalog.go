package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type Catalog struct {
	Services []ServiceEntry `yaml:"services"`
	Stylists []StylistEntry `yaml:"stylists"`
}

type ServiceEntry struct {
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	Category      string  `yaml:"category"`
	CategoryOrder int     `yaml:"category_order"`
	Price         float64 `yaml:"price"`
	DurationMin   int     `yaml:"duration_minutes"`
	Inactive      bool    `yaml:"inactive"`
}

type StylistEntry struct {
	Name            string             `yaml:"name"`
	Specialty       string             `yaml:"specialty"`
	Description     string             `yaml:"description"`
	YearsExperience int                `yaml:"years_experience"`
	Phone           string             `yaml:"phone"`
	Email           string             `yaml:"email"`
	Services        []string           `yaml:"services"`
	WorkingHours    []WorkingHoursSpec `yaml:"working_hours"`
}

type WorkingHoursSpec struct {
	Weekday int    `yaml:"weekday"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
}

type Result struct {
	ServicesCreated int
	ServicesUpdated int
	StylistsCreated int
	StylistsUpdated int
	WorkingHours    int
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	if len(c.Services) == 0 && len(c.Stylists) == 0 {
		return errors.New("catalog is empty")
	}

	known := make(map[string]bool, len(c.Services))
	for _, s := range c.Services {
		if strings.TrimSpace(s.Name) == "" {
			return errors.New("service without name")
		}
		if s.DurationMin <= 0 || s.DurationMin > booking.MaxDurationMin {
			return fmt.Errorf("service %q: duration_minutes must be between 1 and %d", s.Name, booking.MaxDurationMin)
		}
		if s.Price < 0 {
			return fmt.Errorf("service %q: negative price", s.Name)
		}
		known[s.Name] = true
	}

	for _, st := range c.Stylists {
		if strings.TrimSpace(st.Name) == "" {
			return errors.New("stylist without name")
		}
		for _, name := range st.Services {
			if !known[name] {
				return fmt.Errorf("stylist %q: unknown service %q", st.Name, name)
			}
		}
		seen := map[int]bool{}
		for _, wh := range st.WorkingHours {
			if wh.Weekday < 1 || wh.Weekday > 7 {
				return fmt.Errorf("stylist %q: weekday %d out of range 1..7", st.Name, wh.Weekday)
			}
			if seen[wh.Weekday] {
				return fmt.Errorf("stylist %q: weekday %d listed twice", st.Name, wh.Weekday)
			}
			seen[wh.Weekday] = true
			if !validators.IsClockValid(wh.Start) || !validators.IsClockValid(wh.End) || wh.Start >= wh.End {
				return fmt.Errorf("stylist %q: invalid window %s-%s", st.Name, wh.Start, wh.End)
			}
		}
	}
	return nil
}

// Apply upserts services and stylists by name in one transaction. Stylist
// services and listed working hours are replaced; weekdays not listed are
// left untouched.
func Apply(ctx context.Context, db *gorm.DB, c *Catalog) (Result, error) {
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]models.Service, len(c.Services))

		for _, entry := range c.Services {
			svc := models.Service{}
			err := tx.Where("name = ?", entry.Name).First(&svc).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				res.ServicesCreated++
			case err != nil:
				return fmt.Errorf("get service %s: %w", entry.Name, err)
			default:
				res.ServicesUpdated++
			}

			svc.Name = entry.Name
			svc.Description = entry.Description
			svc.Category = entry.Category
			svc.CategoryOrder = entry.CategoryOrder
			svc.Price = entry.Price
			svc.DurationMin = entry.DurationMin
			svc.Active = !entry.Inactive

			if err := tx.Save(&svc).Error; err != nil {
				return fmt.Errorf("save service %s: %w", entry.Name, err)
			}
			byName[svc.Name] = svc
		}

		for _, entry := range c.Stylists {
			st := models.Stylist{}
			err := tx.Where("name = ?", entry.Name).First(&st).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				res.StylistsCreated++
			case err != nil:
				return fmt.Errorf("get stylist %s: %w", entry.Name, err)
			default:
				res.StylistsUpdated++
			}

			st.Name = entry.Name
			st.Specialty = entry.Specialty
			st.Description = entry.Description
			st.YearsExperience = entry.YearsExperience
			st.Phone = entry.Phone
			st.Email = entry.Email
			st.AvatarInitials = Initials(entry.Name)
			st.Active = true

			if err := tx.Omit("Services").Save(&st).Error; err != nil {
				return fmt.Errorf("save stylist %s: %w", entry.Name, err)
			}

			services := make([]models.Service, 0, len(entry.Services))
			for _, name := range entry.Services {
				services = append(services, byName[name])
			}
			if err := tx.Model(&st).Association("Services").Replace(services); err != nil {
				return fmt.Errorf("link services for %s: %w", entry.Name, err)
			}

			for _, spec := range entry.WorkingHours {
				wh := models.WorkingHours{
					StylistID: st.ID,
					Weekday:   spec.Weekday,
					StartTime: spec.Start,
					EndTime:   spec.End,
					Active:    true,
				}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "stylist_id"}, {Name: "weekday"}},
					DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "active", "updated_at"}),
				}).Create(&wh).Error; err != nil {
					return fmt.Errorf("save working hours for %s: %w", entry.Name, err)
				}
				res.WorkingHours++
			}
		}

		return nil
	})

	return res, err
}

// Initials returns up to two uppercase initials for an avatar placeholder.
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		out = append(out, []rune(strings.ToUpper(string(r[0])))...)
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
