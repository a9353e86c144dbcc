package menu

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
	"github.com/tu-usuario/resto-inventario/pkg/logger"
)

// SweepConfig parámetros del barrido de recálculo.
type SweepConfig struct {
	BatchSize  int           // ítems por lote
	BatchPause time.Duration // pausa entre lotes para limitar carga
}

// SweepReport resultado de un barrido completo.
type SweepReport struct {
	Processed int
	Failed    int
	Duration  time.Duration
}

// SweepScheduler recalcula en lotes el stock derivado de todos los ítems de
// menú activos en todas las bodegas de departamento. Dos estados explícitos
// (inactivo/corriendo) detrás de un compare-and-set atómico: un disparo que
// llega con un barrido en curso se rechaza con ErrSweepRunning en vez de
// intercalarse.
type SweepScheduler struct {
	availability  *AvailabilityUseCase
	recipeRepo    repository.RecipeRepository
	warehouseRepo repository.WarehouseRepository
	cfg           SweepConfig
	log           *logger.Logger
	running       atomic.Bool
}

// NewSweepScheduler construye el planificador de barridos.
func NewSweepScheduler(
	availability *AvailabilityUseCase,
	recipeRepo repository.RecipeRepository,
	warehouseRepo repository.WarehouseRepository,
	cfg SweepConfig,
	log *logger.Logger,
) *SweepScheduler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 25
	}
	if cfg.BatchPause <= 0 {
		cfg.BatchPause = 250 * time.Millisecond
	}
	return &SweepScheduler{
		availability:  availability,
		recipeRepo:    recipeRepo,
		warehouseRepo: warehouseRepo,
		cfg:           cfg,
		log:           log,
	}
}

// IsRunning indica si hay un barrido en curso.
func (s *SweepScheduler) IsRunning() bool {
	return s.running.Load()
}

// Sweep ejecuta un barrido completo. Un fallo por ítem se registra y se cuenta
// sin abortar el resto; el barrido es eventual-consistente respecto al libro.
func (s *SweepScheduler) Sweep(ctx context.Context) (*SweepReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrSweepRunning
	}
	defer s.running.Store(false)

	started := time.Now()
	itemIDs, err := s.recipeRepo.ListActiveMenuItemIDs()
	if err != nil {
		return nil, err
	}
	warehouses, err := s.departmentWarehouses()
	if err != nil {
		return nil, err
	}

	report := &SweepReport{}
	for start := 0; start < len(itemIDs); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(itemIDs) {
			end = len(itemIDs)
		}
		for _, itemID := range itemIDs[start:end] {
			for _, wh := range warehouses {
				if _, err := s.availability.RecalculateForItem(ctx, itemID, wh.ID); err != nil {
					s.log.Warn().
						Err(err).
						Str("menu_item_id", itemID).
						Str("warehouse_id", wh.ID).
						Msg("recálculo de ítem fallido")
					report.Failed++
					continue
				}
				report.Processed++
			}
		}
		if end < len(itemIDs) {
			select {
			case <-ctx.Done():
				report.Duration = time.Since(started)
				return report, ctx.Err()
			case <-time.After(s.cfg.BatchPause):
			}
		}
	}

	report.Duration = time.Since(started)
	s.log.Info().
		Int("processed", report.Processed).
		Int("failed", report.Failed).
		Dur("duration", report.Duration).
		Msg("barrido de recálculo completado")
	return report, nil
}

// Start corre barridos periódicos hasta que el contexto se cancele. Un tick que
// encuentra un barrido en curso se omite (el CAS lo rechaza).
func (s *SweepScheduler) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && err != domain.ErrSweepRunning {
				s.log.Error().Err(err).Msg("barrido periódico fallido")
			}
		}
	}
}

// departmentWarehouses bodegas de departamento (las cocinas consumen de ahí).
func (s *SweepScheduler) departmentWarehouses() ([]*entity.Warehouse, error) {
	all, err := s.warehouseRepo.List(100, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Warehouse, 0, len(all))
	for _, wh := range all {
		if wh.Type == entity.WarehouseTypeDepartment {
			out = append(out, wh)
		}
	}
	return out, nil
}
