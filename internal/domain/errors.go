package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrSessionExpired = errors.New("sesión expirada o inexistente")

	// ErrDecoding: payload del remote store con forma inesperada; se rechaza
	// en la frontera en lugar de propagar datos sin validar hacia el dominio.
	ErrDecoding = errors.New("payload remoto malformado")

	// ErrSyncFailed: push o fetch contra el remote store falló; el estado
	// local queda intacto (reconciliación todo-o-nada).
	ErrSyncFailed = errors.New("sincronización fallida")

	// ErrStaleSync: la respuesta de un sync llegó cuando ya existe una
	// generación más reciente; su resultado se descarta.
	ErrStaleSync = errors.New("sync obsoleto descartado")

	// ErrExtractionFailed: el servicio de extracción por imagen falló;
	// no se fusiona ninguna entrada.
	ErrExtractionFailed = errors.New("extracción por imagen fallida")
)
