package observers

import (
	"context"
	"strings"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// newModelHandler builds a typed ModelCallbackHandler logging user/assistant
// messages around model calls.
func newModelHandler() *callbackHelper.ModelCallbackHandler {
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			ev := logx.Debug().Str("component", info.Type).Str("name", info.Name)
			if input != nil && len(input.Messages) > 0 {
				if um := lastUserContent(input.Messages); um != "" {
					ev = ev.Str("user", um)
				}
				ev = ev.Int("messages", len(input.Messages))
			}
			ev.Msg("model call start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			ev := logx.Debug().Str("component", info.Type).Str("name", info.Name)
			if output != nil && output.Message != nil {
				if content := strings.TrimSpace(output.Message.Content); content != "" {
					ev = ev.Str("assistant", content)
				}
			}
			ev.Msg("model call end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("component", info.Type).Str("name", info.Name).Msg("model call error")
			return ctx
		},
	}
}

func lastUserContent(msgs []*schema.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m == nil {
			continue
		}
		if m.Role == schema.User {
			return strings.TrimSpace(m.Content)
		}
	}
	return ""
}
