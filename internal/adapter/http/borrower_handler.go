package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	domain "github.com/snehaa0-0/Loan-portfolio-management/internal/domain/loan"
	borroweruc "github.com/snehaa0-0/Loan-portfolio-management/internal/usecase/borrower"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/dates"
)

type BorrowerHandler struct{ uc *borroweruc.Usecase }

func NewBorrowerHandler(uc *borroweruc.Usecase) *BorrowerHandler {
	return &BorrowerHandler{uc: uc}
}

type createBorrowerReq struct {
	Name         string `json:"name"          validate:"required,max=100"`
	Industry     string `json:"industry"      validate:"max=50"`
	CreditRating string `json:"credit_rating"`
}

func (h *BorrowerHandler) CreateBorrower(c echo.Context) error {
	var req createBorrowerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	rating, err := domain.ParseRiskRating(req.CreditRating)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "credit_rating", Message: err.Error()}},
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), borroweruc.CreateInput{
		Name:         req.Name,
		Industry:     req.Industry,
		CreditRating: rating,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BorrowerHandler) GetBorrower(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type addStatementReq struct {
	StatementDate string  `json:"statement_date" validate:"required,datetime=2006-01-02"`
	Revenue       float64 `json:"revenue"        validate:"dec2"`
	EBITDA        float64 `json:"ebitda"         validate:"dec2"`
	NetIncome     float64 `json:"net_income"     validate:"dec2"`
	TotalAssets   float64 `json:"total_assets"   validate:"dec2"`
	TotalDebt     float64 `json:"total_debt"     validate:"dec2"`
}

func (h *BorrowerHandler) AddStatement(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower id"})
	}
	var req addStatementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	when, _ := time.Parse(dates.Format, req.StatementDate)
	dto, err := h.uc.AddStatement(c.Request().Context(), borroweruc.AddStatementInput{
		BorrowerID:    id,
		StatementDate: when,
		Revenue:       req.Revenue,
		EBITDA:        req.EBITDA,
		NetIncome:     req.NetIncome,
		TotalAssets:   req.TotalAssets,
		TotalDebt:     req.TotalDebt,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BorrowerHandler) ListStatements(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower id"})
	}
	out, err := h.uc.ListStatements(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
