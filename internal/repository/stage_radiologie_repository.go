package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/stagerad/internal/datastore"
	"github.com/jbweber/homelab/stagerad/internal/domain"
)

// StageRadiologieRepository defines persistence operations for internship records
type StageRadiologieRepository interface {
	PagingRepository[domain.StageRadiologie, int64]

	// FindPageByUserLogin retrieves one page of the records owned by login
	FindPageByUserLogin(ctx context.Context, login string, pageable Pageable) (Page[domain.StageRadiologie], error)

	// WithinUnitOfWork runs fn against a repository bound to a single
	// transaction. The transaction commits when fn returns nil and rolls back
	// on any error or panic.
	WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, repo StageRadiologieRepository) error) error

	// Close releases prepared statements held by the repository
	Close() error
}

const (
	stageRadiologieTable   = "stage_radiologies"
	stageRadiologieColumns = "id, annee_etude, date_debut, date_fin, hopital, chef_service, semestre, groupe, " +
		"evaluation_objectif_1_etudiant, note_objectif_1_encadrant_referent, user_login"
)

// stageRadiologieSortColumns maps sortable JSON properties onto columns
var stageRadiologieSortColumns = map[string]string{
	"id":                             "id",
	"anneeEtude":                     "annee_etude",
	"dateDebut":                      "date_debut",
	"dateFin":                        "date_fin",
	"hopital":                        "hopital",
	"chefService":                    "chef_service",
	"semestre":                       "semestre",
	"groupe":                         "groupe",
	"evaluationObjectif1Etudiant":    "evaluation_objectif_1_etudiant",
	"noteObjectif1EncadrantReferent": "note_objectif_1_encadrant_referent",
}

// stageRadiologieRepositoryImpl implements StageRadiologieRepository
type stageRadiologieRepositoryImpl struct {
	*DatastoreRepository[domain.StageRadiologie, int64]
}

// NewStageRadiologieRepository creates a new internship record repository
func NewStageRadiologieRepository(ds *datastore.Datastore) StageRadiologieRepository {
	return &stageRadiologieRepositoryImpl{
		DatastoreRepository: NewDatastoreRepository[domain.StageRadiologie, int64](ds, stageRadiologieTable),
	}
}

// Save inserts a record without an ID and overwrites the record with a matching ID otherwise
func (r *stageRadiologieRepositoryImpl) Save(ctx context.Context, s domain.StageRadiologie) (domain.StageRadiologie, error) {
	if s.ID == nil {
		var id int64
		err := r.queryRow(ctx, `INSERT INTO stage_radiologies (
				annee_etude, date_debut, date_fin, hopital, chef_service, semestre, groupe,
				evaluation_objectif_1_etudiant, note_objectif_1_encadrant_referent, user_login
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			s.AnneeEtude, s.DateDebut, s.DateFin, s.Hopital, s.ChefService, s.Semestre, s.Groupe,
			s.EvaluationObjectif1Etudiant, s.NoteObjectif1EncadrantReferent, ownerArg(s),
		).Scan(&id)
		if err != nil {
			return domain.StageRadiologie{}, fmt.Errorf("failed to create stage radiologie: %w", err)
		}
		s.ID = &id
		return s, nil
	}

	res, err := r.exec(ctx, `UPDATE stage_radiologies SET
			annee_etude = ?, date_debut = ?, date_fin = ?, hopital = ?, chef_service = ?, semestre = ?, groupe = ?,
			evaluation_objectif_1_etudiant = ?, note_objectif_1_encadrant_referent = ?, user_login = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		s.AnneeEtude, s.DateDebut, s.DateFin, s.Hopital, s.ChefService, s.Semestre, s.Groupe,
		s.EvaluationObjectif1Etudiant, s.NoteObjectif1EncadrantReferent, ownerArg(s), *s.ID,
	)
	if err != nil {
		return domain.StageRadiologie{}, fmt.Errorf("failed to update stage radiologie: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.StageRadiologie{}, fmt.Errorf("failed to update stage radiologie: %w", err)
	}
	if affected == 0 {
		return domain.StageRadiologie{}, fmt.Errorf("stage radiologie with ID %d: %w", *s.ID, ErrNotFound)
	}
	return s, nil
}

// FindByID retrieves a record by its ID
func (r *stageRadiologieRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.StageRadiologie, error) {
	row := r.queryRow(ctx, "SELECT "+stageRadiologieColumns+" FROM stage_radiologies WHERE id = ?", id)
	s, err := scanStageRadiologie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StageRadiologie{}, fmt.Errorf("stage radiologie with ID %d: %w", id, ErrNotFound)
		}
		return domain.StageRadiologie{}, fmt.Errorf("failed to find stage radiologie: %w", err)
	}
	return s, nil
}

// FindAll retrieves all records ordered by ID
func (r *stageRadiologieRepositoryImpl) FindAll(ctx context.Context) ([]domain.StageRadiologie, error) {
	rows, err := r.query(ctx, "SELECT "+stageRadiologieColumns+" FROM stage_radiologies ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list stage radiologies: %w", err)
	}
	return collectStageRadiologies(rows)
}

// FindPage retrieves one page over all records
func (r *stageRadiologieRepositoryImpl) FindPage(ctx context.Context, pageable Pageable) (Page[domain.StageRadiologie], error) {
	return r.findPage(ctx, pageable, "")
}

// FindPageByUserLogin retrieves one page over the records owned by login
func (r *stageRadiologieRepositoryImpl) FindPageByUserLogin(ctx context.Context, login string, pageable Pageable) (Page[domain.StageRadiologie], error) {
	return r.findPage(ctx, pageable, "WHERE user_login = ?", login)
}

// WithinUnitOfWork runs fn inside a single transaction
func (r *stageRadiologieRepositoryImpl) WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, repo StageRadiologieRepository) error) error {
	if r.tx != nil {
		// already inside a unit of work
		return fn(ctx, r)
	}
	return r.ds.WithinTx(ctx, func(tx *sql.Tx) error {
		return fn(ctx, &stageRadiologieRepositoryImpl{DatastoreRepository: r.withTx(tx)})
	})
}

func (r *stageRadiologieRepositoryImpl) findPage(ctx context.Context, pageable Pageable, where string, args ...any) (Page[domain.StageRadiologie], error) {
	orderBy, err := orderByClause(pageable.Sort, stageRadiologieSortColumns)
	if err != nil {
		return Page[domain.StageRadiologie]{}, err
	}

	total, err := r.count(ctx, where, args...)
	if err != nil {
		return Page[domain.StageRadiologie]{}, err
	}

	query := "SELECT " + stageRadiologieColumns + " FROM stage_radiologies " + where + " " + orderBy + " LIMIT ? OFFSET ?"
	rows, err := r.query(ctx, query, append(args, pageable.Size, pageable.Offset())...)
	if err != nil {
		return Page[domain.StageRadiologie]{}, fmt.Errorf("failed to list stage radiologies: %w", err)
	}
	content, err := collectStageRadiologies(rows)
	if err != nil {
		return Page[domain.StageRadiologie]{}, err
	}

	return Page[domain.StageRadiologie]{
		Content:       content,
		TotalElements: total,
		Pageable:      pageable,
	}, nil
}

// ownerArg returns the user_login bind value, NULL when the record has no owner
func ownerArg(s domain.StageRadiologie) any {
	if s.User == nil {
		return nil
	}
	return s.User.Login
}

func scanStageRadiologie(row rowScanner) (domain.StageRadiologie, error) {
	var (
		s     domain.StageRadiologie
		id    int64
		note  sql.NullInt64
		login sql.NullString
	)
	err := row.Scan(&id, &s.AnneeEtude, &s.DateDebut, &s.DateFin, &s.Hopital, &s.ChefService,
		&s.Semestre, &s.Groupe, &s.EvaluationObjectif1Etudiant, &note, &login)
	if err != nil {
		return domain.StageRadiologie{}, err
	}

	s.ID = &id
	if note.Valid {
		n := int(note.Int64)
		s.NoteObjectif1EncadrantReferent = &n
	}
	if login.Valid {
		s.User = &domain.UserRef{Login: login.String}
	}
	return s, nil
}

func collectStageRadiologies(rows *sql.Rows) ([]domain.StageRadiologie, error) {
	defer rows.Close()

	result := []domain.StageRadiologie{}
	for rows.Next() {
		s, err := scanStageRadiologie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage radiologie: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stage radiologies: %w", err)
	}
	return result, nil
}
