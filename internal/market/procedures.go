package market

import (
	"go-market-cache/internal/models"
	"go-market-cache/internal/procedure"
)

// Procedure names exposed at /api/{procedure}
const (
	ProcCryptoInfos       = "cmc.getCryptoInfos"
	ProcGlobalMetrics     = "cmc.getGlobalMetrics"
	ProcRankedCryptoList  = "cmc.getRankedCryptoList"
	ProcCryptoDefinitions = "cmc.getCryptoDefinitions"
	ProcOrderBook         = "exchange.getOrderBook"
	ProcOrderBooks        = "exchange.getOrderBooks"
	ProcOHLCV             = "exchange.getOHLCV"
	ProcOHLCVs            = "exchange.getOHLCVs"
	ProcBalances          = "nanoBan.getBalances"
)

// Services groups the procedure implementations
type Services struct {
	CMC      *CMCService
	Exchange *ExchangeService
	NanoBan  *NanoBanService
}

// RegisterProcedures wires every procedure into reg. Quote and definition
// lookups are backed by the snapshot store and skip the fast cache.
func RegisterProcedures(reg *procedure.Registry, w *procedure.Wrapper, svc Services) {
	procedure.Register(reg, ProcCryptoInfos, svc.CMC.GetCryptoInfos)
	procedure.Register(reg, ProcCryptoDefinitions, svc.CMC.GetCryptoDefinitions)
	procedure.Register(reg, ProcGlobalMetrics,
		procedure.Cached(w, ProcGlobalMetrics, models.CacheTierMinutesShort, svc.CMC.GetGlobalMetrics))
	procedure.Register(reg, ProcRankedCryptoList,
		procedure.Cached(w, ProcRankedCryptoList, models.CacheTierMinutesShort, svc.CMC.GetRankedCryptoList))

	procedure.Register(reg, ProcOrderBook,
		procedure.Cached(w, ProcOrderBook, models.CacheTierSecondsShort, svc.Exchange.GetOrderBook))
	procedure.Register(reg, ProcOrderBooks,
		procedure.Cached(w, ProcOrderBooks, models.CacheTierSecondsShort, svc.Exchange.GetOrderBooks))
	procedure.Register(reg, ProcOHLCV,
		procedure.Cached(w, ProcOHLCV, models.CacheTierSecondsMedium, svc.Exchange.GetOHLCV))
	procedure.Register(reg, ProcOHLCVs,
		procedure.Cached(w, ProcOHLCVs, models.CacheTierSecondsMedium, svc.Exchange.GetOHLCVs))

	procedure.Register(reg, ProcBalances,
		procedure.Cached(w, ProcBalances, models.CacheTierSecondsMedium, svc.NanoBan.GetBalances))
}
