package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"plan-measure/measure"
	"plan-measure/project"
)

type sqlProject struct {
	ID        string `gorm:"primaryKey"`
	Image     string
	Scale     float64
	CreatedAt time.Time
	UpdatedAt time.Time

	Measurements []sqlMeasurement `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Suggestions  []sqlSuggestion  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (sqlProject) TableName() string { return "projects" }

type sqlMeasurement struct {
	ProjectID     string `gorm:"primaryKey"`
	Position      int    `gorm:"primaryKey;autoIncrement:false"`
	MeasurementID string `gorm:"index"`
	Name          string
	X             float64
	Y             float64
	Width         float64
	Height        float64
	AreaM2        float64
}

func (sqlMeasurement) TableName() string { return "measurements" }

type sqlSuggestion struct {
	ProjectID    string `gorm:"primaryKey"`
	Position     int    `gorm:"primaryKey;autoIncrement:false"`
	SuggestionID string
	Label        string
	X            float64
	Y            float64
	Width        float64
	Height       float64
	Confidence   float64
}

func (sqlSuggestion) TableName() string { return "suggestions" }

// GormStore keeps projects in a relational database through gorm.
type GormStore struct {
	db *gorm.DB
}

// NewSqliteStore opens (or creates) projects.db inside dir.
func NewSqliteStore(dir string) (*GormStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data dir %s", dir)
	}
	return NewGormStore(WithSqlite(filepath.Join(dir, "projects.db")))
}

func WithSqlite(file string) gorm.Dialector {
	return sqlite.Open(file + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
}

func NewGormStore(d gorm.Dialector) (*GormStore, error) {
	l := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{Logger: l})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	err = db.AutoMigrate(&sqlProject{}, &sqlMeasurement{}, &sqlSuggestion{})
	if err != nil {
		return nil, errors.Wrap(err, "migrate database")
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context, id string) (*project.Snapshot, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var row sqlProject
	err := s.db.WithContext(ctx).
		Preload("Measurements", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Suggestions", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	} else if err != nil {
		return nil, errors.Wrapf(err, "load project %s", id)
	}

	snap := &project.Snapshot{
		ID:        row.ID,
		Image:     row.Image,
		Scale:     row.Scale,
		UpdatedAt: row.UpdatedAt,
		Measurements: lo.Map(row.Measurements, func(m sqlMeasurement, _ int) measure.Measurement {
			return measure.Measurement{
				ID: m.MeasurementID, Name: m.Name,
				X: m.X, Y: m.Y, Width: m.Width, Height: m.Height,
				AreaM2: m.AreaM2,
			}
		}),
		Suggestions: lo.Map(row.Suggestions, func(m sqlSuggestion, _ int) measure.Suggestion {
			return measure.Suggestion{
				ID: m.SuggestionID, Label: m.Label,
				X: m.X, Y: m.Y, Width: m.Width, Height: m.Height,
				Confidence: m.Confidence,
			}
		}),
	}
	snap.Normalize()
	return snap, nil
}

// Save replaces the project row and all of its child rows in one transaction.
func (s *GormStore) Save(ctx context.Context, snap *project.Snapshot) error {
	if err := checkID(snap.ID); err != nil {
		return err
	}
	snap.UpdatedAt = time.Now().UTC()

	row := sqlProject{
		ID:        snap.ID,
		Image:     snap.Image,
		Scale:     snap.Scale,
		UpdatedAt: snap.UpdatedAt,
	}
	ms := lo.Map(snap.Measurements, func(m measure.Measurement, i int) sqlMeasurement {
		return sqlMeasurement{
			ProjectID: snap.ID, Position: i,
			MeasurementID: m.ID, Name: m.Name,
			X: m.X, Y: m.Y, Width: m.Width, Height: m.Height,
			AreaM2: m.AreaM2,
		}
	})
	ss := lo.Map(snap.Suggestions, func(m measure.Suggestion, i int) sqlSuggestion {
		return sqlSuggestion{
			ProjectID: snap.ID, Position: i,
			SuggestionID: m.ID, Label: m.Label,
			X: m.X, Y: m.Y, Width: m.Width, Height: m.Height,
			Confidence: m.Confidence,
		}
	})

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"image", "scale", "updated_at"}),
			}).
			Create(&row).Error
		if err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", snap.ID).Delete(&sqlMeasurement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", snap.ID).Delete(&sqlSuggestion{}).Error; err != nil {
			return err
		}

		if len(ms) > 0 {
			if err := tx.Create(&ms).Error; err != nil {
				return err
			}
		}
		if len(ss) > 0 {
			if err := tx.Create(&ss).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "save project %s", snap.ID)
}

func (s *GormStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&sqlProject{}).Order("id").Pluck("id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	return ids, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&sqlMeasurement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&sqlSuggestion{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&sqlProject{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete project %s", id)
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(ErrNotFound, "%s", id)
		}
		return nil
	})
}

func (s *GormStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
