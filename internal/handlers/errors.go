package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
)

var messages = map[string]string{
	"invalid_request":               "Dados inválidos.",
	"invalid_id":                    "Identificador inválido.",
	"invalid_date":                  "Data inválida (use AAAA-MM-DD).",
	"invalid_time":                  "Horário inválido (use HH:MM).",
	"invalid_month":                 "Ano ou mês inválido.",
	"invalid_status":                "Status inválido.",
	"invalid_name":                  "Nome obrigatório.",
	"invalid_email":                 "E-mail inválido.",
	"invalid_email_domain":          "Domínio de e-mail inexistente.",
	"invalid_phone":                 "Telefone inválido.",
	"invalid_timezone":              "Fuso horário inválido.",
	"invalid_service_duration":      "Serviço com duração inválida.",
	"client_identity_required":      "Informe e-mail e telefone do agendamento.",
	"in_the_past":                   "Não é possível agendar no passado.",
	"business_not_found":            "Estabelecimento não encontrado.",
	"service_not_found":             "Serviço não encontrado.",
	"appointment_not_found":         "Agendamento não encontrado.",
	"plan_not_found":                "Plano não encontrado.",
	"business_hours_not_configured": "Horário de funcionamento não configurado.",
	"outside_business_hours":        "Fora do horário de atendimento.",
	"time_conflict":                 "Conflito de horário.",
	"subscription_conflict":         "Outra assinatura foi ativada ao mesmo tempo. Tente novamente.",
	"appointment_not_pending":       "Agendamento não está pendente.",
	"appointment_not_cancellable":   "Agendamento não pode ser cancelado.",
	"not_appointment_owner":         "Agendamento não pertence a este cliente.",
	"no_active_subscription":        "Nenhuma assinatura ativa.",
	"subscription_expired":          "Assinatura expirada.",
	"monthly_limit_reached":         "Limite mensal de agendamentos atingido.",
}

// writeError maps business errors to their status. Anything else is logged
// and answered with a generic 500.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		httperr.WriteBusiness(c, be, messages[be.Code])
		return
	}

	logger.ErrorContext(c.Request.Context(), "request failed",
		"request_id", middleware.RequestIDFromContext(c.Request.Context()),
		"path", c.FullPath(),
		"err", err,
	)
	httperr.Internal(c, "internal_error", "Erro interno.")
}

func badRequest(c *gin.Context, code string) {
	httperr.BadRequest(c, code, messages[code])
}
