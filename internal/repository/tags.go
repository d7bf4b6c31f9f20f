package repository

import (
	"context"

	"github.com/foodgram/backend/internal/models"
)

func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.conn(ctx).Order("id").Find(&tags).Error
	return tags, err
}

func (s *Store) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.conn(ctx).First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

// FindTags loads the tags with the given ids; missing ids are skipped
func (s *Store) FindTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := s.conn(ctx).Where("id IN ?", ids).Order("id").Find(&tags).Error
	return tags, err
}

func (s *Store) SaveTag(ctx context.Context, tag *models.Tag) error {
	return s.conn(ctx).Save(tag).Error
}

// TagInUse reports whether any recipe carries the tag
func (s *Store) TagInUse(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Table("recipe_tags").Where("tag_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *Store) DeleteTag(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.Tag{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
