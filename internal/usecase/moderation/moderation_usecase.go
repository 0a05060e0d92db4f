package moderation

import (
	"context"
	"errors"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type ModerationUseCase struct {
	userRepo   repository.UserRepository
	blockRepo  repository.BlockRepository
	reportRepo repository.ReportRepository
}

func NewModerationUseCase(
	userRepo repository.UserRepository,
	blockRepo repository.BlockRepository,
	reportRepo repository.ReportRepository,
) *ModerationUseCase {
	return &ModerationUseCase{
		userRepo:   userRepo,
		blockRepo:  blockRepo,
		reportRepo: reportRepo,
	}
}

type BlockRequest struct {
	TargetUserID int `json:"target_user_id" binding:"required"`
}

type ReportRequest struct {
	ReportedUserID int    `json:"reported_user_id" binding:"required"`
	Reason         string `json:"reason" binding:"required,min=3,max=200"`
	Details        string `json:"details" binding:"omitempty,max=2000"`
}

type UpdateReportRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes" binding:"omitempty,max=2000"`
}

// Block hides the target from the caller's discovery. Set semantics: blocking
// twice is a no-op.
func (uc *ModerationUseCase) Block(ctx context.Context, userID int, req *BlockRequest) error {
	if userID == req.TargetUserID {
		return domain.ValidationError("cannot block yourself")
	}
	if err := uc.ensureTarget(ctx, req.TargetUserID); err != nil {
		return err
	}
	return uc.blockRepo.Add(ctx, userID, req.TargetUserID)
}

func (uc *ModerationUseCase) Unblock(ctx context.Context, userID int, req *BlockRequest) error {
	return uc.blockRepo.Remove(ctx, userID, req.TargetUserID)
}

// Report files an abuse complaint. It opens in the Open state and moves only
// through admin review.
func (uc *ModerationUseCase) Report(ctx context.Context, userID int, req *ReportRequest) (*domain.Report, error) {
	if userID == req.ReportedUserID {
		return nil, domain.ValidationError("cannot report yourself")
	}
	if err := uc.ensureTarget(ctx, req.ReportedUserID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ReporterUserID: userID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Details:        req.Details,
		Status:         domain.ReportOpen,
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports is the admin review queue, optionally filtered by status.
func (uc *ModerationUseCase) ListReports(ctx context.Context, status string) ([]*domain.Report, error) {
	if status != "" && !domain.ValidReportStatus(status) {
		return nil, domain.ValidationError("invalid report status")
	}
	return uc.reportRepo.List(ctx, status)
}

// UpdateReport moves a report through its lifecycle and records notes.
func (uc *ModerationUseCase) UpdateReport(ctx context.Context, id int, req *UpdateReportRequest) (*domain.Report, error) {
	report, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !domain.ValidReportStatus(*req.Status) {
			return nil, domain.ValidationError("invalid report status")
		}
		report.Status = *req.Status
	}
	if req.AdminNotes != nil {
		report.AdminNotes = *req.AdminNotes
	}

	if err := uc.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (uc *ModerationUseCase) ensureTarget(ctx context.Context, targetID int) error {
	if _, err := uc.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrTargetNotFound
		}
		return err
	}
	return nil
}
