package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
	"github.com/davicafu/sortlab/internal/task/domain"
)

// TaskRepoMongoDB guarda cada tarea con una copia embebida de su
// responsable, de modo que "assignee__nombre" se ordena como "assignee.nombre".
type TaskRepoMongoDB struct {
	tasksColl *mongo.Collection
	usersColl *mongo.Collection
}

var _ domain.TaskRepository = (*TaskRepoMongoDB)(nil)

// NewTaskRepoMongoDB comprueba la conexión y prepara las colecciones.
func NewTaskRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*TaskRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &TaskRepoMongoDB{
		tasksColl: db.Collection("tasks"),
		usersColl: db.Collection("users"),
	}, nil
}

// --- Documentos BSON ---
// Se definen aquí para no llevar tags de BSON al dominio.

type mongoUser struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Nombre    string    `bson:"nombre"`
	BirthDate time.Time `bson:"birth_date"`
	CreatedAt time.Time `bson:"created_at"`
}

type mongoTask struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	Status      string     `bson:"status"`
	Assignee    *mongoUser `bson:"assignee,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

func toMongoUser(u *domain.User) *mongoUser {
	if u == nil {
		return nil
	}
	return &mongoUser{ID: u.ID.String(), Email: u.Email, Nombre: u.Nombre, BirthDate: u.BirthDate.UTC(), CreatedAt: u.CreatedAt.UTC()}
}

func fromMongoUser(mu *mongoUser) (*domain.User, error) {
	id, err := uuid.Parse(mu.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in mongo user: %w", err)
	}
	return &domain.User{ID: id, Email: mu.Email, Nombre: mu.Nombre, BirthDate: mu.BirthDate, CreatedAt: mu.CreatedAt}, nil
}

func toMongoTask(t *domain.Task) *mongoTask {
	return &mongoTask{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Assignee:    toMongoUser(t.Assignee),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func fromMongoTask(mt *mongoTask) (*domain.Task, error) {
	id, err := uuid.Parse(mt.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in mongo task: %w", err)
	}
	t := &domain.Task{
		ID:          id,
		Title:       mt.Title,
		Description: mt.Description,
		Status:      domain.TaskStatus(mt.Status),
		CreatedAt:   mt.CreatedAt,
		UpdatedAt:   mt.UpdatedAt,
	}
	if mt.Assignee != nil {
		if t.Assignee, err = fromMongoUser(mt.Assignee); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ---------- Ordenamiento ----------

// sortableFields son los campos que Mongo ordena directamente.
var sortableFields = map[string]bool{
	"title":                true,
	"description":          true,
	"status":               true,
	"created_at":           true,
	"updated_at":           true,
	"assignee__nombre":     true,
	"assignee__email":      true,
	"assignee__birth_date": true,
}

// computedFields existen en el dominio pero no en el documento.
var computedFields = map[string]bool{
	"assignee__age": true,
}

var defaultSort = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// SortDocument traduce s al documento de orden de Mongo. Los campos
// calculados devuelven sorting.ErrOrderingUnsupported para que el
// orquestador ordene en memoria.
func SortDocument(s query.Sort) (bson.D, error) {
	if s.IsZero() {
		return defaultSort, nil
	}
	if computedFields[s.Field] {
		return nil, fmt.Errorf("%w: %q is computed", sorting.ErrOrderingUnsupported, s.Field)
	}
	if !sortableFields[s.Field] {
		return nil, fmt.Errorf("%w: unknown field %q", sorting.ErrInvalidField, s.Field)
	}

	dir := 1
	if s.Desc {
		dir = -1
	}
	key := strings.ReplaceAll(s.Field, sorting.PathSeparator, ".")
	return append(bson.D{{Key: key, Value: dir}}, defaultSort...), nil
}

// --- Escritura ---

// SaveUser guarda el usuario y refresca la copia embebida en sus tareas.
func (r *TaskRepoMongoDB) SaveUser(ctx context.Context, u *domain.User) error {
	mu := toMongoUser(u)
	if _, err := r.usersColl.ReplaceOne(ctx, bson.M{"_id": mu.ID}, mu, options.Replace().SetUpsert(true)); err != nil {
		return err
	}
	_, err := r.tasksColl.UpdateMany(ctx, bson.M{"assignee._id": mu.ID}, bson.M{"$set": bson.M{"assignee": mu}})
	return err
}

func (r *TaskRepoMongoDB) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.tasksColl.InsertOne(ctx, toMongoTask(t))
	return err
}

func (r *TaskRepoMongoDB) Update(ctx context.Context, t *domain.Task) error {
	mt := toMongoTask(t)
	res, err := r.tasksColl.ReplaceOne(ctx, bson.M{"_id": mt.ID}, mt)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// --- Lectura ---

func (r *TaskRepoMongoDB) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var mu mongoUser
	if err := r.usersColl.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return fromMongoUser(&mu)
}

func (r *TaskRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var mt mongoTask
	if err := r.tasksColl.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return fromMongoTask(&mt)
}

func (r *TaskRepoMongoDB) List(ctx context.Context, f domain.TaskFilter, s query.Sort) ([]*domain.Task, error) {
	sortDoc, err := SortDocument(s)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}

	cursor, err := r.tasksColl.Find(ctx, filter, options.Find().SetSort(sortDoc))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []mongoTask
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		t, err := fromMongoTask(&docs[i])
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
