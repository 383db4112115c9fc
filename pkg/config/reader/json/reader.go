package json

import (
	"errors"
	"os"
	"regexp"
	"time"

	"dario.cat/mergo"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/reader"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/source"
)

type jsonReader struct {
	opts reader.Options
}

// NewReader 创建一个以JSON为中间表示的配置Reader
func NewReader(opts ...reader.Option) reader.Reader {
	return &jsonReader{
		opts: reader.NewOptions(opts...),
	}
}

// Merge 按顺序合并多个配置快照，后面的覆盖前面的
func (j *jsonReader) Merge(changes ...*source.ChangeSet) (*source.ChangeSet, error) {
	var merged map[string]interface{}

	for _, m := range changes {
		if m == nil || len(m.Data) == 0 {
			continue
		}

		codec, ok := j.opts.Encoding[m.Format]
		if !ok {
			// 未知格式按json处理
			codec = j.opts.Encoding["json"]
		}

		var data map[string]interface{}
		if err := codec.Decode(m.Data, &data); err != nil {
			return nil, err
		}
		if err := mergo.Map(&merged, data, mergo.WithOverride); err != nil {
			return nil, err
		}
	}

	if merged == nil {
		return nil, errors.New("no config sources to merge")
	}

	b, err := j.opts.Encoding["json"].Encode(merged)
	if err != nil {
		return nil, err
	}

	cs := &source.ChangeSet{
		Timestamp: time.Now(),
		Data:      b,
		Source:    "json",
		Format:    "json",
	}
	cs.Checksum = cs.Sum()

	return cs, nil
}

func (j *jsonReader) Values(ch *source.ChangeSet) (reader.Values, error) {
	if ch == nil {
		return nil, errors.New("changeset is nil")
	}
	return newValues(ch)
}

func (j *jsonReader) String() string {
	return "json"
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// ReplaceEnvVars 把配置内容里的${VAR}替换为对应环境变量的值
func ReplaceEnvVars(data []byte) ([]byte, error) {
	replaced := envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
	return replaced, nil
}
