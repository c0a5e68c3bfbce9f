package database

import (
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Generate migrates the schema and writes gorm/gen query helpers for every
// model into outPath.
func (d Database) Generate(outPath string) error {
	db := d.db.Session(&gorm.Session{
		Logger:                 newGormLogger(logger.Info),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if err := New(db).Migrate(); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(models.All()...)

	g.Execute()
	log.Info().Str("outPath", outPath).Msg("Query helpers generated")
	return nil
}
