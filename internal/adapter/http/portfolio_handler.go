package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snehaa0-0/Loan-portfolio-management/internal/usecase/portfolio"
)

type PortfolioHandler struct{ uc *portfolio.Usecase }

func NewPortfolioHandler(uc *portfolio.Usecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) Overview(c echo.Context) error {
	out, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) SyndicationReport(c echo.Context) error {
	out, err := h.uc.SyndicationReport(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) MaturityProfile(c echo.Context) error {
	out, err := h.uc.MaturityProfile(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) CovenantCompliance(c echo.Context) error {
	out, err := h.uc.CovenantCompliance(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) Performance(c echo.Context) error {
	out, err := h.uc.Performance(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) Export(c echo.Context) error {
	out, err := h.uc.ExportRows(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
