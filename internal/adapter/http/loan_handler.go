package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	loanuc "github.com/snehaa0-0/Loan-portfolio-management/internal/usecase/loan"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/dates"
)

type LoanHandler struct{ uc *loanuc.Usecase }

func NewLoanHandler(uc *loanuc.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	LoanNumber      string  `json:"loan_number"      validate:"required,max=20"`
	BorrowerID      uint64  `json:"borrower_id"      validate:"required"`
	Amount          float64 `json:"amount"           validate:"required,gt=0,dec2"`
	OriginationDate string  `json:"origination_date" validate:"required,datetime=2006-01-02"`
	MaturityDate    string  `json:"maturity_date"    validate:"required,datetime=2006-01-02"`
	InterestRate    float64 `json:"interest_rate"    validate:"gte=0,lte=1"`
	Purpose         string  `json:"purpose"          validate:"max=200"`
	RiskRating      string  `json:"risk_rating"`
	Status          string  `json:"status"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	origination, _ := time.Parse(dates.Format, req.OriginationDate)
	maturity, _ := time.Parse(dates.Format, req.MaturityDate)

	rating, err := domain.ParseRiskRating(req.RiskRating)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "risk_rating", Message: err.Error()}},
		})
	}
	var status domain.Status
	if req.Status != "" {
		if status, err = domain.ParseStatus(req.Status); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "status", Message: err.Error()}},
			})
		}
	}

	dto, err := h.uc.Create(c.Request().Context(), loanuc.CreateLoanInput{
		LoanNumber:      req.LoanNumber,
		BorrowerID:      req.BorrowerID,
		Amount:          req.Amount,
		OriginationDate: origination,
		MaturityDate:    maturity,
		InterestRate:    req.InterestRate,
		Purpose:         req.Purpose,
		RiskRating:      rating,
		Status:          status,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	var f loanuc.ListFilter
	if v := c.QueryParam("status"); v != "" {
		s, err := domain.ParseStatus(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		f.Status = s
	}
	if v := c.QueryParam("risk_rating"); v != "" {
		r, err := domain.ParseRiskRating(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		f.RiskRating = r
	}
	if v := c.QueryParam("borrower_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower_id"})
		}
		f.BorrowerID = id
	}
	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateStatusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "status", Message: err.Error()}},
		})
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("loan_number"), status)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type addPortionReq struct {
	ParticipantID     uint64  `json:"participant_id"     validate:"required"`
	Amount            float64 `json:"amount"             validate:"required,gt=0,dec2"`
	ParticipationDate string  `json:"participation_date" validate:"required,datetime=2006-01-02"`
}

func (h *LoanHandler) AddSyndicatePortion(c echo.Context) error {
	var req addPortionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	when, _ := time.Parse(dates.Format, req.ParticipationDate)
	dto, err := h.uc.AddSyndicatePortion(c.Request().Context(), loanuc.AddPortionInput{
		LoanNumber:        c.Param("loan_number"),
		ParticipantID:     req.ParticipantID,
		Amount:            req.Amount,
		ParticipationDate: when,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) SyndicationStatus(c echo.Context) error {
	out, err := h.uc.SyndicationStatus(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type registerPaymentReq struct {
	PaymentDate     string  `json:"payment_date"     validate:"required,datetime=2006-01-02"`
	PrincipalAmount float64 `json:"principal_amount" validate:"gte=0,dec2"`
	InterestAmount  float64 `json:"interest_amount"  validate:"gte=0,dec2"`
	FeesAmount      float64 `json:"fees_amount"      validate:"gte=0,dec2"`
}

func (h *LoanHandler) RegisterPayment(c echo.Context) error {
	var req registerPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	when, _ := time.Parse(dates.Format, req.PaymentDate)
	dto, err := h.uc.RegisterPayment(c.Request().Context(), loanuc.RegisterPaymentInput{
		LoanNumber:      c.Param("loan_number"),
		PaymentDate:     when,
		PrincipalAmount: req.PrincipalAmount,
		InterestAmount:  req.InterestAmount,
		FeesAmount:      req.FeesAmount,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type scheduleReq struct {
	StartDate       string `json:"start_date"       validate:"required,datetime=2006-01-02"`
	FrequencyMonths int    `json:"frequency_months" validate:"gte=0,lte=60"`
	NumPayments     int    `json:"num_payments"     validate:"gte=0,lte=1200"`
}

func (h *LoanHandler) SchedulePayments(c echo.Context) error {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	start, _ := time.Parse(dates.Format, req.StartDate)
	out, err := h.uc.SchedulePayments(c.Request().Context(), loanuc.ScheduleInput{
		LoanNumber:      c.Param("loan_number"),
		StartDate:       start,
		FrequencyMonths: req.FrequencyMonths,
		NumPayments:     req.NumPayments,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

type addCovenantReq struct {
	Description    string   `json:"description"     validate:"required"`
	CovenantType   string   `json:"covenant_type"   validate:"max=50"`
	ThresholdValue *float64 `json:"threshold_value"`
}

func (h *LoanHandler) AddCovenant(c echo.Context) error {
	var req addCovenantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AddCovenant(c.Request().Context(), loanuc.AddCovenantInput{
		LoanNumber:     c.Param("loan_number"),
		Description:    req.Description,
		CovenantType:   req.CovenantType,
		ThresholdValue: req.ThresholdValue,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) LoanMetrics(c echo.Context) error {
	out, err := h.uc.Metrics(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type createParticipantReq struct {
	Name            string `json:"name"             validate:"required,max=100"`
	InstitutionType string `json:"institution_type" validate:"max=50"`
	ContactEmail    string `json:"contact_email"    validate:"omitempty,email"`
}

func (h *LoanHandler) CreateParticipant(c echo.Context) error {
	var req createParticipantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.CreateParticipant(c.Request().Context(), loanuc.CreateParticipantInput{
		Name:            req.Name,
		InstitutionType: req.InstitutionType,
		ContactEmail:    req.ContactEmail,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
