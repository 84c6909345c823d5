package store

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"freelancer-access/internal/domain/access"
)

// Templates persists access.Template bundles.
type Templates struct {
	DB *gorm.DB
}

func newTemplateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "tpl_" + hex.EncodeToString(bytes)
}

func (s Templates) List() ([]access.Template, error) {
	var rows []AccessTemplate
	if err := s.DB.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]access.Template, 0, len(rows))
	for _, row := range rows {
		tpl, err := toTemplate(row)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, nil
}

func (s Templates) Get(id string) (access.Template, error) {
	var row AccessTemplate
	if err := s.DB.First(&row, "id = ?", id).Error; err != nil {
		return access.Template{}, err
	}
	return toTemplate(row)
}

// Save creates or updates a template; a missing ID gets generated. The
// content map is sanitized before it is stored.
func (s Templates) Save(tpl access.Template) (access.Template, error) {
	if tpl.ID == "" {
		tpl.ID = newTemplateID()
	}
	tpl.Content = access.SanitizeContent(tpl.Content)

	raw, err := json.Marshal(tpl.Content)
	if err != nil {
		return access.Template{}, err
	}

	var row AccessTemplate
	err = s.DB.First(&row, "id = ?", tpl.ID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return access.Template{}, err
	}

	row.ID = tpl.ID
	row.Name = tpl.Name
	row.Description = tpl.Description
	row.Content = datatypes.JSON(raw)
	if err := s.DB.Save(&row).Error; err != nil {
		return access.Template{}, err
	}
	return toTemplate(row)
}

func (s Templates) Delete(id string) error {
	res := s.DB.Delete(&AccessTemplate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toTemplate(row AccessTemplate) (access.Template, error) {
	content := map[string][]int64{}
	if len(row.Content) > 0 {
		if err := json.Unmarshal(row.Content, &content); err != nil {
			return access.Template{}, err
		}
	}
	return access.Template{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Content:     access.SanitizeContent(content),
		Created:     row.CreatedAt,
		Modified:    row.UpdatedAt,
	}, nil
}
