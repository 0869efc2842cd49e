// Package lessonrepo stores lessons, their category trees and the
// scheduling state of their cards. Queries are built with squirrel.
package lessonrepo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/leitner/internal/adapter/postgres"
	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/internal/lesson"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var cardColumns = []string{
	"c.id", "c.category_id", "c.front", "c.back", "c.level",
	"c.date_created", "c.date_tested", "c.date_expired", "c.date_touched",
	"c.tests_total", "c.tests_passed", "c.learned_front", "c.learned_back",
}

// Repo provides lesson persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a lesson repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateLesson stores a new lesson named name whose root category is root.
// The root's children and cards are not stored; use SaveTree for that.
func (r *Repo) CreateLesson(ctx context.Context, name string, root *lesson.Category) (domain.Lesson, error) {
	l := domain.Lesson{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		RootCategoryID: root.ID,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := l.Validate(); err != nil {
		return domain.Lesson{}, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert("lessons").
		Columns("id", "name", "created_at").
		Values(l.ID, l.Name, l.CreatedAt).
		ToSql()
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("build insert lesson: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return domain.Lesson{}, postgres.MapError(err, "lesson", l.ID)
	}

	if err := r.insertCategory(ctx, q, l.ID, root, nil, 0); err != nil {
		return domain.Lesson{}, err
	}
	return l, nil
}

// CreateCategory stores a non-root category. Its position is its index among
// its parent's children.
func (r *Repo) CreateCategory(ctx context.Context, lessonID uuid.UUID, c *lesson.Category) error {
	parent := c.Parent()
	if parent == nil {
		return domain.NewValidationError("parent", "root categories are created with the lesson")
	}
	position := slices.Index(parent.Children(), c)
	return r.insertCategory(ctx, postgres.QuerierFromCtx(ctx, r.pool), lessonID, c, &parent.ID, position)
}

func (r *Repo) insertCategory(ctx context.Context, q postgres.Querier, lessonID uuid.UUID, c *lesson.Category, parentID *uuid.UUID, position int) error {
	query, args, err := psql.Insert("categories").
		Columns("id", "lesson_id", "parent_id", "name", "position").
		Values(c.ID, lessonID, parentID, c.Name, position).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert category: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "category", c.ID)
	}
	return nil
}

// CreateCard stores a card of an already stored category.
func (r *Repo) CreateCard(ctx context.Context, card *lesson.Card) error {
	cat := card.Category()
	if cat == nil {
		return domain.NewValidationError("category", "card is not in a category")
	}

	query, args, err := psql.Insert("cards").
		SetMap(cardValues(card)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert card: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "card", card.ID)
	}
	return nil
}

// SaveTree stores every category below root and every card of the tree.
// The lesson and root category must already exist.
func (r *Repo) SaveTree(ctx context.Context, lessonID uuid.UUID, root *lesson.Category) error {
	for _, c := range root.Subtree()[1:] {
		if err := r.CreateCategory(ctx, lessonID, c); err != nil {
			return err
		}
	}
	for _, card := range root.AllCards() {
		if err := r.CreateCard(ctx, card); err != nil {
			return err
		}
	}
	return nil
}

// SaveCards writes the scheduling state of cards (level, deck position,
// dates, counters) in one batch. Every card must exist.
func (r *Repo) SaveCards(ctx context.Context, cards []*lesson.Card) error {
	if len(cards) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, card := range cards {
		if card.Category() == nil {
			return domain.NewValidationError("category", fmt.Sprintf("card %s is not in a category", card.ID))
		}
		values := cardValues(card)
		delete(values, "id")
		delete(values, "date_created")

		query, args, err := psql.Update("cards").
			SetMap(values).
			Where(squirrel.Eq{"id": card.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update card: %w", err)
		}
		batch.Queue(query, args...)
	}

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	for _, card := range cards {
		tag, err := results.Exec()
		if err != nil {
			return postgres.MapError(err, "card", card.ID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("card %s: %w", card.ID, domain.ErrNotFound)
		}
	}
	return nil
}

func cardValues(card *lesson.Card) map[string]any {
	cat := card.Category()
	return map[string]any{
		"id":            card.ID,
		"category_id":   cat.ID,
		"front":         card.Front,
		"back":          card.Back,
		"level":         card.Level(),
		"position":      slices.Index(cat.Deck(card.Level()), card),
		"date_created":  card.DateCreated,
		"date_tested":   card.DateTested,
		"date_expired":  card.DateExpired,
		"date_touched":  card.DateTouched,
		"tests_total":   card.TestsTotal,
		"tests_passed":  card.TestsPassed,
		"learned_front": card.LearnedAmount(false),
		"learned_back":  card.LearnedAmount(true),
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Load reads a lesson and rebuilds its category tree with every card in its
// deck, in stored order. It returns domain.ErrNotFound for unknown lessons.
func (r *Repo) Load(ctx context.Context, lessonID uuid.UUID) (domain.Lesson, *lesson.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := r.getLesson(ctx, q, lessonID)
	if err != nil {
		return domain.Lesson{}, nil, err
	}

	cats, root, err := r.loadCategories(ctx, q, lessonID)
	if err != nil {
		return domain.Lesson{}, nil, err
	}
	l.RootCategoryID = root.ID

	if err := r.loadCards(ctx, q, lessonID, cats); err != nil {
		return domain.Lesson{}, nil, err
	}
	return l, root, nil
}

func (r *Repo) getLesson(ctx context.Context, q postgres.Querier, id uuid.UUID) (domain.Lesson, error) {
	query, args, err := psql.Select("id", "name", "created_at").
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("build select lesson: %w", err)
	}

	var l domain.Lesson
	if err := q.QueryRow(ctx, query, args...).Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
		return domain.Lesson{}, postgres.MapError(err, "lesson", id)
	}
	return l, nil
}

type categoryRow struct {
	id       uuid.UUID
	parentID *uuid.UUID
	name     string
}

func (r *Repo) loadCategories(ctx context.Context, q postgres.Querier, lessonID uuid.UUID) (map[uuid.UUID]*lesson.Category, *lesson.Category, error) {
	query, args, err := psql.Select("id", "parent_id", "name").
		From("categories").
		Where(squirrel.Eq{"lesson_id": lessonID}).
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("build select categories: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, postgres.MapError(err, "lesson", lessonID)
	}
	defer rows.Close()

	var list []categoryRow
	for rows.Next() {
		var row categoryRow
		if err := rows.Scan(&row.id, &row.parentID, &row.name); err != nil {
			return nil, nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, postgres.MapError(err, "lesson", lessonID)
	}

	cats := make(map[uuid.UUID]*lesson.Category, len(list))
	for _, row := range list {
		c := lesson.NewCategory(row.name)
		c.ID = row.id
		cats[row.id] = c
	}

	var root *lesson.Category
	for _, row := range list {
		c := cats[row.id]
		if row.parentID == nil {
			root = c
			continue
		}
		parent, ok := cats[*row.parentID]
		if !ok {
			return nil, nil, fmt.Errorf("category %s: parent %s: %w", row.id, *row.parentID, domain.ErrNotFound)
		}
		parent.AttachChild(c)
	}
	if root == nil {
		return nil, nil, fmt.Errorf("lesson %s: root category: %w", lessonID, domain.ErrNotFound)
	}
	return cats, root, nil
}

func (r *Repo) loadCards(ctx context.Context, q postgres.Querier, lessonID uuid.UUID, cats map[uuid.UUID]*lesson.Category) error {
	query, args, err := psql.Select(cardColumns...).
		From("cards c").
		Join("categories cat ON cat.id = c.category_id").
		Where(squirrel.Eq{"cat.lesson_id": lessonID}).
		OrderBy("c.level", "c.position", "c.id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select cards: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "lesson", lessonID)
	}
	defer rows.Close()

	for rows.Next() {
		card, categoryID, level, err := scanCard(rows)
		if err != nil {
			return err
		}
		cat, ok := cats[categoryID]
		if !ok {
			return fmt.Errorf("card %s: category %s: %w", card.ID, categoryID, domain.ErrNotFound)
		}
		cat.AddCard(card, level)
	}
	if err := rows.Err(); err != nil {
		return postgres.MapError(err, "lesson", lessonID)
	}
	return nil
}

func scanCard(row pgx.Row) (*lesson.Card, uuid.UUID, int, error) {
	var (
		card         lesson.Card
		categoryID   uuid.UUID
		level        int
		learnedFront int
		learnedBack  int
	)
	err := row.Scan(
		&card.ID, &categoryID, &card.Front, &card.Back, &level,
		&card.DateCreated, &card.DateTested, &card.DateExpired, &card.DateTouched,
		&card.TestsTotal, &card.TestsPassed, &learnedFront, &learnedBack,
	)
	if err != nil {
		return nil, uuid.Nil, 0, fmt.Errorf("scan card: %w", err)
	}
	card.SetLearnedAmounts(learnedFront, learnedBack)
	return &card, categoryID, level, nil
}
