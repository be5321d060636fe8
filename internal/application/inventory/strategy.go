package inventory

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

// Nombres de estrategia aceptados en configuración.
const (
	StrategyFEFO = "FEFO"
	StrategyFIFO = "FIFO"
	StrategyLIFO = "LIFO"
)

// DefaultPageSize saldos leídos por consulta al recorrer candidatos.
const DefaultPageSize = 50

// CandidateSource origen de saldos candidatos (normalmente el StockRepository atado al pool).
type CandidateSource interface {
	ListCandidates(ctx context.Context, q repository.CandidateQuery, order inventory.CandidateOrder, limit int) ([]*entity.StockBalance, error)
}

// Strategy política de selección de saldos. Hay exactamente tres: FEFO, FIFO y LIFO.
// Candidates produce la secuencia de forma perezosa: cada página se consulta al momento
// de necesitarla, así refleja las reservas hechas mientras se recorre. La secuencia no se reutiliza.
type Strategy interface {
	Name() string
	Candidates(ctx context.Context, src CandidateSource, q repository.CandidateQuery) iter.Seq2[*entity.StockBalance, error]
}

// FEFO primero lo que vence antes.
type FEFO struct{ PageSize int }

// FIFO primero lo que se recibió antes.
type FIFO struct{ PageSize int }

// LIFO primero lo último recibido.
type LIFO struct{ PageSize int }

func (FEFO) Name() string { return StrategyFEFO }
func (FIFO) Name() string { return StrategyFIFO }
func (LIFO) Name() string { return StrategyLIFO }

func (s FEFO) Candidates(ctx context.Context, src CandidateSource, q repository.CandidateQuery) iter.Seq2[*entity.StockBalance, error] {
	return paginate(ctx, src, q, inventory.OrderExpiryAsc, s.PageSize)
}

func (s FIFO) Candidates(ctx context.Context, src CandidateSource, q repository.CandidateQuery) iter.Seq2[*entity.StockBalance, error] {
	return paginate(ctx, src, q, inventory.OrderReceiptAsc, s.PageSize)
}

func (s LIFO) Candidates(ctx context.Context, src CandidateSource, q repository.CandidateQuery) iter.Seq2[*entity.StockBalance, error] {
	return paginate(ctx, src, q, inventory.OrderReceiptDesc, s.PageSize)
}

// StrategyByName resuelve la estrategia configurada (FEFO, FIFO o LIFO, sin distinguir mayúsculas).
func StrategyByName(name string, pageSize int) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case StrategyFEFO:
		return FEFO{PageSize: pageSize}, nil
	case StrategyFIFO:
		return FIFO{PageSize: pageSize}, nil
	case StrategyLIFO:
		return LIFO{PageSize: pageSize}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, name)
}

// paginate recorre los candidatos por páginas con cursor (el último saldo entregado),
// de modo que los saldos que dejan de ser candidatos entre páginas no desplazan el recorrido.
func paginate(ctx context.Context, src CandidateSource, q repository.CandidateQuery, order inventory.CandidateOrder, pageSize int) iter.Seq2[*entity.StockBalance, error] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return func(yield func(*entity.StockBalance, error) bool) {
		cursor := q
		cursor.After = nil
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			page, err := src.ListCandidates(ctx, cursor, order, pageSize)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, b := range page {
				if !yield(b, nil) {
					return
				}
			}
			if len(page) < pageSize {
				return
			}
			cursor.After = page[len(page)-1]
		}
	}
}
