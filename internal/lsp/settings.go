package lsp

import "encoding/json"

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

// applySettings folds workspace settings into the active configuration.
// Only fields the client actually sent are touched; everything else keeps
// its manifest or default value.
func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return
	}
	s.mu.Lock()
	if settings.Vibe.Interpreter.Path != nil {
		s.cfg.Interpreter.Binary = *settings.Vibe.Interpreter.Path
	}
	if settings.Vibe.Interpreter.UseRunSubcommand != nil {
		s.cfg.Interpreter.UseRunSubcommand = *settings.Vibe.Interpreter.UseRunSubcommand
	}
	if settings.Vibe.Diagnostics.Enabled != nil {
		s.cfg.Diagnostics.Enabled = settings.Vibe.Diagnostics.Enabled
	}
	if settings.Vibe.Diagnostics.TimeoutMS != nil {
		s.cfg.Diagnostics.TimeoutMS = *settings.Vibe.Diagnostics.TimeoutMS
	}
	if settings.Vibe.Diagnostics.MaxOutputKB != nil {
		s.cfg.Diagnostics.MaxOutputKB = *settings.Vibe.Diagnostics.MaxOutputKB
	}
	disabled := !s.cfg.DiagnosticsEnabled()
	s.mu.Unlock()
	if disabled {
		s.clearAllDiagnostics()
	}
}
