package response

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
	CodeRateLimited     = "RATE_LIMITED"

	CodeSlotBooked      = "SLOT_BOOKED"
	CodeSlotUnavailable = "SLOT_UNAVAILABLE"
	CodeOverbooking     = "OVERBOOKING"
	CodeEmptyCart       = "EMPTY_CART"
	CodeEmailExists     = "EMAIL_EXISTS"
	CodeInvalidLogin    = "INVALID_CREDENTIALS"
	CodeStepOutOfOrder  = "STEP_OUT_OF_ORDER"
	CodePaymentFailed   = "PAYMENT_FAILED"
)

const fallbackMessage = "Ocurrió un error inesperado. Inténtalo de nuevo."

// Messages maps error codes to the text shown to end users.
var Messages = map[string]string{
	CodeValidation:      "Revisa los datos ingresados.",
	CodeUnauthenticated: "Debes iniciar sesión para continuar.",
	CodeForbidden:       "No tienes permiso para realizar esta acción.",
	CodeNotFound:        "No encontramos lo que buscabas.",
	CodeConflict:        "La operación entra en conflicto con el estado actual.",
	CodeInternal:        fallbackMessage,
	CodeRateLimited:     "Demasiadas solicitudes. Espera un momento e inténtalo de nuevo.",
	CodeSlotBooked:      "Ese horario ya está reservado y no se puede eliminar.",
	CodeSlotUnavailable: "Ese horario ya no está disponible.",
	CodeOverbooking:     "Otra persona acaba de reservar ese horario.",
	CodeEmptyCart:       "Tu carrito está vacío.",
	CodeEmailExists:     "Este correo ya está registrado.",
	CodeInvalidLogin:    "Correo o contraseña incorrectos.",
	CodeStepOutOfOrder:  "Completa los pasos anteriores primero.",
	CodePaymentFailed:   "No pudimos procesar el pago.",
}

// Message returns the catalog text for code, or a generic fallback.
func Message(code string) string {
	if m, ok := Messages[code]; ok {
		return m
	}
	return fallbackMessage
}
