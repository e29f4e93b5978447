package mapper

import (
	"time"

	"notefiber-editor/internal/dto"
	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/model"

	"gorm.io/gorm"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.StoredNote {
	if n == nil {
		return nil
	}

	var deletedAt *time.Time
	if n.DeletedAt.Valid {
		t := n.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.StoredNote{
		Id: n.Id,
		Note: entity.Note{
			Title:            n.Title,
			Description:      n.Description,
			Date:             n.Date,
			ButtonContent:    n.ButtonContent,
			ButtonUrl:        n.ButtonUrl,
			ShowCallToAction: n.ShowCallToAction,
		},
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: n.DeletedAt.Valid,
	}
}

func (m *NoteMapper) ToModel(n *entity.StoredNote) *model.Note {
	if n == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if n.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *n.DeletedAt, Valid: true}
	} else if n.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		Id:               n.Id,
		Title:            n.Note.Title,
		Description:      n.Note.Description,
		Date:             n.Note.Date,
		ButtonContent:    n.Note.ButtonContent,
		ButtonUrl:        n.Note.ButtonUrl,
		ShowCallToAction: n.Note.ShowCallToAction,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *NoteMapper) ToResponse(n *entity.StoredNote) *dto.NoteResponse {
	if n == nil {
		return nil
	}

	return &dto.NoteResponse{
		Id:            n.Id,
		Title:         n.Note.Title,
		Description:   n.Note.Description,
		Date:          n.Note.Date,
		ButtonContent: n.Note.ButtonContent,
		ButtonUrl:     n.Note.ButtonUrl,
		ShowCTA:       n.Note.ShowCallToAction,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func (m *NoteMapper) FromResponse(r *dto.NoteResponse) *entity.StoredNote {
	if r == nil {
		return nil
	}

	return &entity.StoredNote{
		Id: r.Id,
		Note: entity.Note{
			Title:            r.Title,
			Description:      r.Description,
			Date:             r.Date,
			ButtonContent:    r.ButtonContent,
			ButtonUrl:        r.ButtonUrl,
			ShowCallToAction: r.ShowCTA,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *NoteMapper) FromCreateRequest(req *dto.CreateNoteRequest) entity.Note {
	return entity.Note{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		ButtonContent:    req.ButtonContent,
		ButtonUrl:        req.ButtonUrl,
		ShowCallToAction: req.ShowCTA,
	}
}

func (m *NoteMapper) FromUpdateRequest(req *dto.UpdateNoteRequest) entity.Note {
	return entity.Note{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		ButtonContent:    req.ButtonContent,
		ButtonUrl:        req.ButtonUrl,
		ShowCallToAction: req.ShowCTA,
	}
}

func (m *NoteMapper) ToCreateRequest(id string, n entity.Note) *dto.CreateNoteRequest {
	return &dto.CreateNoteRequest{
		Id:            id,
		Title:         n.Title,
		Description:   n.Description,
		Date:          n.Date,
		ButtonContent: n.ButtonContent,
		ButtonUrl:     n.ButtonUrl,
		ShowCTA:       n.ShowCallToAction,
	}
}

func (m *NoteMapper) ToUpdateRequest(n entity.Note) *dto.UpdateNoteRequest {
	return &dto.UpdateNoteRequest{
		Title:         n.Title,
		Description:   n.Description,
		Date:          n.Date,
		ButtonContent: n.ButtonContent,
		ButtonUrl:     n.ButtonUrl,
		ShowCTA:       n.ShowCallToAction,
	}
}
